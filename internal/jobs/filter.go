package jobs

import (
	"sort"
	"strings"

	"careers-gateway/internal/smartrecruiters"
)

// Hiring-pipeline window shown to visitors. Jobs earlier (applied/screen) or
// later (hired/closed) than this window stay hidden, as do internal postings
// and other departments sharing the same ATS account.
var visibleStatuses = map[string]bool{
	"sourcing":  true,
	"interview": true,
	"offer":     true,
}

func visible(j smartrecruiters.Job, department string) bool {
	if j.PostingStatus != "PUBLIC" {
		return false
	}
	if !visibleStatuses[strings.ToLower(j.Status)] {
		return false
	}
	return j.Department != nil && j.Department.Label == department
}

// matchesSearch is an OR across title, department label and city.
func matchesSearch(j smartrecruiters.Job, term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(j.Title), needle) {
		return true
	}
	if j.Department != nil && strings.Contains(strings.ToLower(j.Department.Label), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(j.Location.City), needle)
}

// distinctCities returns the sorted set of cities across the given jobs. Fed
// only the currently visible set so the location filter never offers a city
// whose jobs are all hidden.
func distinctCities(js []smartrecruiters.Job) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, j := range js {
		city := strings.TrimSpace(j.Location.City)
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true
		out = append(out, city)
	}
	sort.Strings(out)
	return out
}

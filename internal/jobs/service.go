package jobs

import (
	"context"
	"strconv"
	"strings"
	"time"

	"careers-gateway/internal/jobad"
	"careers-gateway/internal/smartrecruiters"
)

// ATSClient is the slice of the SmartRecruiters client this package needs.
type ATSClient interface {
	ListJobs(ctx context.Context, opts smartrecruiters.ListJobsOpts) (smartrecruiters.JobsPage, error)
	GetJob(ctx context.Context, id string) (smartrecruiters.JobDetail, error)
	GetPublications(ctx context.Context, id string) ([]smartrecruiters.Publication, error)
}

type Service struct {
	ats               ATSClient
	department        string
	publicationSource string
	cache             *ttlCache
}

func NewService(ats ATSClient, department, publicationSource string, cacheTTL time.Duration) *Service {
	return &Service{
		ats:               ats,
		department:        department,
		publicationSource: publicationSource,
		cache:             newTTLCache(cacheTTL),
	}
}

type Query struct {
	Search string
	City   string
	Limit  int
	PageID string
}

type OpenPositions struct {
	TotalFound int                   `json:"totalFound"`
	Jobs       []smartrecruiters.Job `json:"jobs"`
	Cities     []string              `json:"cities"`
	NextPageID string                `json:"nextPageId,omitempty"`
}

// visiblePage is the department/status-filtered upstream page. Cached before
// the search filter so a cached page serves every search term on it.
type visiblePage struct {
	jobs       []smartrecruiters.Job
	nextPageID string
}

// OpenPositions answers "what open positions should a visitor see". The
// upstream page is narrowed to public postings of the configured department
// in the sourcing/interview/offer window, then optionally searched. Counts
// and the cities facet reflect the narrowed set, not the upstream total.
// On failure the zero counts come with non-nil empty slices so callers always
// get a well-formed shape.
func (s *Service) OpenPositions(ctx context.Context, q Query) (OpenPositions, error) {
	city := strings.TrimSpace(q.City)
	if city == "all" {
		city = ""
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	page, err := s.visiblePage(ctx, city, limit, q.PageID)
	if err != nil {
		return OpenPositions{Jobs: []smartrecruiters.Job{}, Cities: []string{}}, err
	}

	matched := page.jobs
	if term := strings.TrimSpace(q.Search); term != "" {
		matched = []smartrecruiters.Job{}
		for _, j := range page.jobs {
			if matchesSearch(j, term) {
				matched = append(matched, j)
			}
		}
	}

	return OpenPositions{
		TotalFound: len(matched),
		Jobs:       matched,
		Cities:     distinctCities(matched),
		NextPageID: page.nextPageID,
	}, nil
}

// listKey identifies one upstream page: a different city, limit or page
// cursor is a different page and must not share a cache entry.
func listKey(city string, limit int, pageID string) string {
	return "list\x00" + city + "\x00" + strconv.Itoa(limit) + "\x00" + pageID
}

func (s *Service) visiblePage(ctx context.Context, city string, limit int, pageID string) (visiblePage, error) {
	key := listKey(city, limit, pageID)
	if v, ok := s.cache.get(key); ok {
		return v.(visiblePage), nil
	}

	upstream, err := s.ats.ListJobs(ctx, smartrecruiters.ListJobsOpts{
		City:   city,
		Limit:  limit,
		PageID: pageID,
	})
	if err != nil {
		return visiblePage{}, err
	}

	kept := []smartrecruiters.Job{}
	for _, j := range upstream.Content {
		if visible(j, s.department) {
			kept = append(kept, j)
		}
	}

	page := visiblePage{jobs: kept, nextPageID: upstream.NextPageID}
	s.cache.set(key, page)
	return page, nil
}

type Detail struct {
	smartrecruiters.JobDetail
	// Summary is a plain-text excerpt of the ad body for previews and link
	// cards. The ad section HTML itself is passed through untouched.
	Summary string `json:"summary,omitempty"`
}

// JobDetail fetches one job's full ad content. An upstream 404 surfaces as
// smartrecruiters.ErrNotFound so callers can render a not-found state.
func (s *Service) JobDetail(ctx context.Context, id string) (Detail, error) {
	key := "job\x00" + id
	if v, ok := s.cache.get(key); ok {
		return v.(Detail), nil
	}

	jd, err := s.ats.GetJob(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{JobDetail: jd, Summary: jobad.Summary(jd.JobAd, 280)}
	s.cache.set(key, d)
	return d, nil
}

type ApplyTarget struct {
	PostingID   string `json:"postingId"`
	PublishedOn string `json:"publishedOn"`
	SourceName  string `json:"sourceName"`
}

// ApplyTarget finds the career-page publication used to build the external
// apply link. A job without one (including an upstream 404 on the
// publications endpoint) returns (nil, nil): it simply isn't accepting
// applications through this channel right now.
func (s *Service) ApplyTarget(ctx context.Context, id string) (*ApplyTarget, error) {
	pubs, err := s.ats.GetPublications(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, p := range pubs {
		if p.SourceName == s.publicationSource {
			return &ApplyTarget{
				PostingID:   p.PostingID,
				PublishedOn: p.PublishedOn,
				SourceName:  p.SourceName,
			}, nil
		}
	}
	return nil, nil
}

// WarmDefault re-fetches the default listing page, refreshing the cache entry
// the public site hits hardest. Used by the background refresher.
func (s *Service) WarmDefault(ctx context.Context) ([]smartrecruiters.Job, error) {
	s.cache.mu.Lock()
	delete(s.cache.m, listKey("", 100, ""))
	s.cache.mu.Unlock()

	page, err := s.visiblePage(ctx, "", 100, "")
	if err != nil {
		return nil, err
	}
	return page.jobs, nil
}

// WarmDetail primes the detail cache for one job, ignoring staleness.
func (s *Service) WarmDetail(ctx context.Context, id string) error {
	_, err := s.JobDetail(ctx, id)
	return err
}

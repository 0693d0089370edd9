package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a careful
// operator should hear about before the config is saved.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.SmartRecruiters.BaseURL = strings.TrimRight(strings.TrimSpace(out.SmartRecruiters.BaseURL), "/")
	out.SmartRecruiters.IdentityURL = strings.TrimSpace(out.SmartRecruiters.IdentityURL)
	out.SmartRecruiters.Department = strings.TrimSpace(out.SmartRecruiters.Department)
	out.SmartRecruiters.PublicationSource = strings.TrimSpace(out.SmartRecruiters.PublicationSource)

	if out.SmartRecruiters.PublicationSource == "" {
		out.SmartRecruiters.PublicationSource = "Default Career Page"
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	origins := make([]string, 0, len(out.App.AllowedOrigins))
	for _, o := range out.App.AllowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if u, err := url.Parse(o); err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("app.allowed_origins entry is not a valid origin: %q", o)
			continue
		}
		origins = append(origins, o)
	}
	out.App.AllowedOrigins = origins
	if len(origins) == 0 {
		res.addWarn("app.allowed_origins is empty; any origin may call the gateway.")
	}

	checkURL := func(name, raw string) {
		if raw == "" {
			res.addErr("%s is required", name)
			return
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("%s is not a valid absolute URL: %q", name, raw)
		}
	}
	checkURL("smartrecruiters.base_url", out.SmartRecruiters.BaseURL)
	checkURL("smartrecruiters.identity_url", out.SmartRecruiters.IdentityURL)

	if out.SmartRecruiters.Department == "" {
		res.addErr("smartrecruiters.department is required; without it every job in the account would be shown")
	}

	if out.Cache.TTLSeconds < 0 {
		res.addErr("cache.ttl_seconds must be >= 0")
	} else if out.Cache.TTLSeconds == 0 {
		res.addWarn("cache.ttl_seconds is 0; every page view hits the ATS directly.")
	} else if out.Cache.TTLSeconds > 3600 {
		res.addWarn("cache.ttl_seconds is over an hour (%d); closed jobs will linger on the site.", out.Cache.TTLSeconds)
	}

	if out.Submissions.RatePerMinute < 0 {
		res.addErr("submissions.rate_per_minute must be >= 0 (0 disables the limiter)")
	}
	if out.Submissions.RatePerMinute > 0 && out.Submissions.Burst <= 0 {
		res.addErr("submissions.burst must be > 0 when rate limiting is enabled")
	}

	return out, res
}

package smartrecruiters

// Wire types for the SmartRecruiters API. The upstream JSON is an external
// schema we don't control, so everything is decoded into explicit structs at
// this boundary; fields the site never reads are still carried through so the
// presentation layer gets the same shape the API returned.

type Location struct {
	CountryCode string `json:"countryCode"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Manual      bool   `json:"manual"`
	Remote      bool   `json:"remote"`
	RegionCode  string `json:"regionCode"`
}

type Department struct {
	Label string `json:"label"`
}

type Language struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	LabelNative string `json:"labelNative"`
}

type CustomField struct {
	FieldID    string `json:"fieldId"`
	FieldLabel string `json:"fieldLabel"`
	ValueID    string `json:"valueId,omitempty"`
	ValueLabel string `json:"valueLabel,omitempty"`
}

type Job struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	RefNumber      string        `json:"refNumber"`
	Status         string        `json:"status"`
	CreatedOn      string        `json:"createdOn"`
	UpdatedOn      string        `json:"updatedOn,omitempty"`
	LastActivityOn string        `json:"lastActivityOn,omitempty"`
	Department     *Department   `json:"department,omitempty"`
	Location       Location      `json:"location"`
	Language       *Language     `json:"language,omitempty"`
	PostingStatus  string        `json:"postingStatus"`
	CustomField    []CustomField `json:"customField,omitempty"`
}

type JobAdSection struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type JobAdSections struct {
	CompanyDescription    *JobAdSection `json:"companyDescription,omitempty"`
	JobDescription        *JobAdSection `json:"jobDescription,omitempty"`
	Qualifications        *JobAdSection `json:"qualifications,omitempty"`
	AdditionalInformation *JobAdSection `json:"additionalInformation,omitempty"`
}

type JobAd struct {
	Sections JobAdSections `json:"sections"`
}

type JobDetail struct {
	Job
	TypeOfEmployment *struct {
		Label string `json:"label"`
	} `json:"typeOfEmployment,omitempty"`
	ExperienceLevel *struct {
		ID    string `json:"id,omitempty"`
		Label string `json:"label,omitempty"`
	} `json:"experienceLevel,omitempty"`
	JobAd *JobAd `json:"jobAd,omitempty"`
}

// JobsPage is one page of the jobs search endpoint.
type JobsPage struct {
	TotalFound int    `json:"totalFound"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
	NextPageID string `json:"nextPageId,omitempty"`
	Content    []Job  `json:"content"`
}

type Publication struct {
	SourceName    string `json:"sourceName"`
	Type          string `json:"type"`
	PublishedOn   string `json:"publishedOn"`
	UnpublishedOn string `json:"unpublishedOn,omitempty"`
	PostingID     string `json:"postingId"`
}

type publicationsResponse struct {
	Content []Publication `json:"content"`
}

type Candidate struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

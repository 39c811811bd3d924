package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Company is one careers site in the roster. Query is encoded onto
// BaseURL when the scrape target is resolved.
type Company struct {
	Name      string            `yaml:"name"`
	BaseURL   string            `yaml:"base_url"`
	Query     map[string]string `yaml:"query,omitempty"`
	MaxPages  int               `yaml:"max_pages,omitempty"`
	Extractor string            `yaml:"extractor,omitempty"`
}

// ResolvedURL builds the final scrape URL with the query parameters
// encoded.
func (c Company) ResolvedURL() (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("company %s: bad base_url: %w", c.Name, err)
	}

	if len(c.Query) > 0 {
		q := u.Query()
		for k, v := range c.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

type Roster struct {
	Companies []Company `yaml:"companies"`
}

// LoadRoster reads a roster file, or returns the built-in roster when
// path is empty.
func LoadRoster(path string) (*Roster, error) {
	if path == "" {
		return DefaultRoster(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Roster
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}

	for i, c := range r.Companies {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("roster %s: company %d has no name", path, i+1)
		}
		if strings.TrimSpace(c.BaseURL) == "" {
			return nil, fmt.Errorf("roster %s: company %s has no base_url", path, c.Name)
		}
	}

	return &r, nil
}

func SaveRoster(r *Roster, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Find returns the company with the given name, case-insensitively.
func (r *Roster) Find(name string) (Company, bool) {
	for _, c := range r.Companies {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Company{}, false
}

// Select resolves a comma separated list of names against the roster.
// Unknown names are an error; an empty list selects everything.
func (r *Roster) Select(list string) ([]Company, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return r.Companies, nil
	}

	var out []Company
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, ok := r.Find(name)
		if !ok {
			return nil, fmt.Errorf("unknown company %q (have: %s)", name, strings.Join(r.Names(), ", "))
		}
		out = append(out, c)
	}

	if len(out) == 0 {
		return r.Companies, nil
	}
	return out, nil
}

func (r *Roster) Names() []string {
	out := make([]string, 0, len(r.Companies))
	for _, c := range r.Companies {
		out = append(out, c.Name)
	}
	sort.Strings(out)
	return out
}

// DefaultRoster covers the careers sites jobscout ships extractors
// for. A custom roster file replaces it wholesale.
func DefaultRoster() *Roster {
	return &Roster{Companies: []Company{
		{
			Name:    "Amazon",
			BaseURL: "https://www.amazon.jobs/en/search",
			Query: map[string]string{
				"base_query": "software engineer",
				"country":    "IND",
			},
			MaxPages:  2,
			Extractor: "amazon",
		},
		{
			Name:      "Google",
			BaseURL:   "https://www.google.com/about/careers/applications/jobs/results/",
			Query:     map[string]string{"location": "India"},
			MaxPages:  2,
			Extractor: "google",
		},
		{
			Name:      "Cisco",
			BaseURL:   "https://jobs.cisco.com/jobs/SearchJobs/",
			Query:     map[string]string{"projectOffset": "0"},
			MaxPages:  2,
			Extractor: "cisco",
		},
		{
			Name:      "Microsoft",
			BaseURL:   "https://jobs.careers.microsoft.com/global/en/search",
			Query:     map[string]string{"q": "software engineer"},
			MaxPages:  2,
			Extractor: "microsoft",
		},
		{
			Name:    "IBM",
			BaseURL: "https://www.ibm.com/in-en/careers/search",
			Query: map[string]string{
				"field_keyword_17[0]": "Remote",
				"field_keyword_05[0]": "India",
			},
			MaxPages:  2,
			Extractor: "ibm",
		},
		{
			Name:      "HCL",
			BaseURL:   "https://www.hcltech.com/jobs",
			MaxPages:  2,
			Extractor: "hcl",
		},
		{
			Name:      "Capgemini",
			BaseURL:   "https://www.capgemini.com/in-en/careers/join-capgemini/job-search/",
			MaxPages:  2,
			Extractor: "capgemini",
		},
		{
			Name:      "Mahindra",
			BaseURL:   "https://jobs.mahindracareers.com/search/",
			Query:     map[string]string{"q": "", "startrow": "0"},
			MaxPages:  2,
			Extractor: "mahindra",
		},
		{
			Name:      "Nestle",
			BaseURL:   "https://www.nestle.in/jobs/search-jobs",
			MaxPages:  2,
			Extractor: "nestle",
		},
	}}
}

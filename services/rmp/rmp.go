// Package rmp looks up professor ratings through the unofficial
// RateMyProfessors graphql endpoint. It is a best-effort side channel:
// failures here degrade to "no ratings", they never fail a suggestion.
package rmp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foothill-backend/lib/telemetry"

	"github.com/antzucaro/matchr"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/rmp")

const DefaultBaseUrl = "https://www.ratemyprofessors.com/graphql"

const teacherSearchQuery = `
query TeacherSearch($query: String!, $schoolID: ID!) {
  newSearch {
    teachers(query: $query, schoolID: $schoolID) {
      edges {
        node {
          id
          firstName
          lastName
          department
          avgRating
          numRatings
          wouldTakeAgainPercent
          avgDifficulty
          legacyId
        }
      }
    }
  }
}
`

type Teacher struct {
	Id                    string  `json:"id"`
	FirstName             string  `json:"firstName"`
	LastName              string  `json:"lastName"`
	Department            string  `json:"department"`
	AvgRating             float64 `json:"avgRating"`
	NumRatings            int64   `json:"numRatings"`
	WouldTakeAgainPercent float64 `json:"wouldTakeAgainPercent"`
	AvgDifficulty         float64 `json:"avgDifficulty"`
	LegacyId              int64   `json:"legacyId"`
}

// ProfileUrl returns the public profile page for the teacher, or "" when
// the teacher has no legacy id to link to.
func (t Teacher) ProfileUrl() string {
	if t.LegacyId == 0 {
		return ""
	}
	return fmt.Sprintf("https://www.ratemyprofessors.com/professor/%d", t.LegacyId)
}

func (t Teacher) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// the RateMyProfessors school id to search within
	SchoolId string
	// defaults to 8 seconds
	Timeout time.Duration
}

type Client struct {
	http     *resty.Client
	schoolId string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.SchoolId == "" {
		return nil, fmt.Errorf("school id is required")
	}
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 8
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(timeout)
	telemetry.InstrumentResty(client, "services/rmp/http")

	return &Client{http: client, schoolId: opts.SchoolId}, nil
}

// NormalizeInstructor turns the schedule's "Last, First" form into the
// "First Last" form the search endpoint expects. Names without a comma
// pass through unchanged.
func NormalizeInstructor(name string) string {
	last, first, found := strings.Cut(name, ",")
	if !found {
		return name
	}
	last = strings.TrimSpace(last)
	first = strings.TrimSpace(first)
	if last == "" || first == "" {
		return name
	}
	return first + " " + last
}

// SearchTeachers queries the graphql endpoint for teachers matching the
// given name within the client's school.
func (c *Client) SearchTeachers(ctx context.Context, name string) ([]Teacher, error) {
	ctx, span := tracer.Start(ctx, "SearchTeachers")
	defer span.End()

	var result struct {
		Data struct {
			NewSearch struct {
				Teachers struct {
					Edges []struct {
						Node Teacher `json:"node"`
					} `json:"edges"`
				} `json:"teachers"`
			} `json:"newSearch"`
		} `json:"data"`
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"query": teacherSearchQuery,
			"variables": map[string]string{
				"query":    name,
				"schoolID": c.schoolId,
			},
		}).
		SetResult(&result).
		Post("")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "teacher search request failed")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("teacher search failed: status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "teacher search returned an error status")
		return nil, err
	}

	var teachers []Teacher
	for _, edge := range result.Data.NewSearch.Teachers.Edges {
		teachers = append(teachers, edge.Node)
	}
	return teachers, nil
}

// BestMatch picks the most plausible teacher for an instructor name:
// highest name similarity first, rating volume as the tiebreaker so a
// well-reviewed profile beats a ghost one. Returns false when the
// candidate list is empty.
func BestMatch(teachers []Teacher, name string) (Teacher, bool) {
	if len(teachers) == 0 {
		return Teacher{}, false
	}

	normalized := strings.ToUpper(NormalizeInstructor(name))

	best := teachers[0]
	bestSimilarity := -1.0
	for _, t := range teachers {
		similarity := matchr.JaroWinkler(strings.ToUpper(t.FullName()), normalized, false)
		if similarity > bestSimilarity ||
			(similarity == bestSimilarity && t.NumRatings > best.NumRatings) {
			best = t
			bestSimilarity = similarity
		}
	}
	return best, true
}

// Lookup searches and picks the best match in one go.
func (c *Client) Lookup(ctx context.Context, instructor string) (Teacher, bool, error) {
	teachers, err := c.SearchTeachers(ctx, NormalizeInstructor(instructor))
	if err != nil {
		return Teacher{}, false, err
	}
	best, ok := BestMatch(teachers, instructor)
	return best, ok, nil
}

package foothill

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"foothill-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultBaseUrl   = "https://foothill.edu/schedule/"
	defaultUserAgent = "FoothillETL/1.0"
)

// DebugOutput receives raw page bodies worth keeping around for offline
// inspection, e.g. a schedule page with zero CRN markers on it.
// restyutil.FilesystemOutput satisfies it.
type DebugOutput interface {
	Write(id string, contents string)
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to "FoothillETL/1.0"
	UserAgent string
	// defaults to 30 seconds
	Timeout time.Duration
}

// Client fetches the public schedule page. It holds no mutable state
// beyond the underlying http client; concurrent use is fine.
type Client struct {
	baseUrl     string
	http        *resty.Client
	debugOutput DebugOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	if _, err := url.Parse(baseUrl); err != nil {
		return nil, err
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)
	telemetry.InstrumentResty(client, "scrapers/foothill/http")

	return &Client{
		baseUrl: baseUrl,
		http:    client,
	}, nil
}

// SetDebugOutput attaches a sink for raw page dumps. Without one the
// dumps are skipped.
func (c *Client) SetDebugOutput(out DebugOutput) {
	c.debugOutput = out
}

// FetchOptions mirror the query parameters of the schedule search form.
// Zero values take the form's own defaults; Quarter is required.
type FetchOptions struct {
	// e.g. "2026W", "2026S"
	Quarter string
	// department code, "every" means all departments
	Dept string
	// "all" | "open" | "waitlist", matching the UI wording
	Availability string
	// "anymodality" | "online" | "inperson" ...
	Modality string
	// "anywhere" | "foothill" | "sunnyvale" | "online" ...
	Location string
	Oer      string
	Time     string
	GEArea   string
	ADay     string
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.Dept == "" {
		o.Dept = "CS"
	}
	if o.Availability == "" {
		o.Availability = "all"
	}
	if o.Modality == "" {
		o.Modality = "anymodality"
	}
	if o.Location == "" {
		o.Location = "anywhere"
	}
	if o.Oer == "" {
		o.Oer = "any"
	}
	if o.Time == "" {
		o.Time = "Any Time"
	}
	if o.GEArea == "" {
		o.GEArea = "any"
	}
	if o.ADay == "" {
		o.ADay = "A"
	}
	return o
}

type FetchResult struct {
	StatusCode int
	FinalUrl   string
	Body       []byte
}

// FetchSchedule requests one schedule page. Any non-2xx status is a hard
// failure; retrying is the caller's business, not ours.
func (c *Client) FetchSchedule(ctx context.Context, opts FetchOptions) (FetchResult, error) {
	if opts.Quarter == "" {
		return FetchResult{}, fmt.Errorf("quarter is required")
	}
	opts = opts.withDefaults()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"Quarter":      opts.Quarter,
			"dept":         opts.Dept,
			"availability": opts.Availability,
			"modality":     opts.Modality,
			"location":     opts.Location,
			"oer":          opts.Oer,
			"time":         opts.Time,
			"GEArea":       opts.GEArea,
			"ADay":         opts.ADay,
			"type":         "any",
			"srchcrn":      "",
			"srchinst":     "",
		}).
		Get(c.baseUrl)
	if err != nil {
		return FetchResult{}, err
	}

	finalUrl := c.baseUrl
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		finalUrl = res.RawResponse.Request.URL.String()
	}

	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return FetchResult{}, fmt.Errorf(
			"schedule fetch failed: status %d from %s",
			res.StatusCode(), finalUrl,
		)
	}

	return FetchResult{
		StatusCode: res.StatusCode(),
		FinalUrl:   finalUrl,
		Body:       res.Body(),
	}, nil
}

// ScrapeClasses fetches and extracts one quarter/department worth of
// sections. A failed fetch aborts with no partial results. A successful
// fetch with zero CRN markers yields an empty slice plus a warning with
// the resolved url, and the raw body goes to the debug sink so the page
// can be inspected later.
func (c *Client) ScrapeClasses(ctx context.Context, opts FetchOptions) ([]ClassRow, error) {
	ctx, span := tracer.Start(ctx, "ScrapeClasses")
	defer span.End()

	opts = opts.withDefaults()

	res, err := c.FetchSchedule(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch schedule page")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse schedule page html")
		return nil, err
	}

	extraction := ExtractClasses(ctx, doc, opts.Quarter, opts.Dept)
	if extraction.Anchors == 0 {
		slog.WarnContext(
			ctx, "no crn markers found",
			"url", res.FinalUrl,
			"status", res.StatusCode,
		)
		if c.debugOutput != nil {
			c.debugOutput.Write("debug_no_crn.html", string(res.Body))
		}
	}

	return extraction.Rows, nil
}

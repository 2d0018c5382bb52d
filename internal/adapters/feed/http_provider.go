package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPProvider talks to the ticketing platform's REST API. Listings are
// page-numbered; pages are fetched sequentially until the API reports no
// more, respecting the platform's rate limits.
type HTTPProvider struct {
	base  string
	orgID string
	token string
	http  *http.Client
}

// NewHTTPProvider creates a provider for the given organization.
func NewHTTPProvider(base, orgID, token string) *HTTPProvider {
	return &HTTPProvider{
		base:  strings.TrimRight(base, "/"),
		orgID: orgID,
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

type pagination struct {
	PageNumber  int  `json:"page_number"`
	PageCount   int  `json:"page_count"`
	HasMoreItems bool `json:"has_more_items"`
}

type wireEvent struct {
	ID       string `json:"id"`
	SeriesID string `json:"series_id"`
	Name     struct {
		Text string `json:"text"`
	} `json:"name"`
	Start struct {
		UTC string `json:"utc"`
	} `json:"start"`
	Description struct {
		Text string `json:"text"`
	} `json:"description"`
}

type wireAttendee struct {
	Created string `json:"created"`
	Profile struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"profile"`
	TicketClassName string `json:"ticket_class_name"`
	Answers         []struct {
		QuestionID string `json:"question_id"`
		Question   string `json:"question"`
		Answer     string `json:"answer"`
	} `json:"answers"`
}

// ListOrgEvents returns the organization's current and upcoming events across
// all pages.
func (p *HTTPProvider) ListOrgEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/organizations/%s/events/?status=live,started,ended&page=%d",
			p.base, url.PathEscape(p.orgID), page)
		var body struct {
			Pagination pagination  `json:"pagination"`
			Events     []wireEvent `json:"events"`
		}
		if err := p.get(ctx, endpoint, &body); err != nil {
			return nil, fmt.Errorf("list events page %d: %w", page, err)
		}
		for _, e := range body.Events {
			events = append(events, Event{
				ID:          e.ID,
				SeriesID:    e.SeriesID,
				Name:        e.Name.Text,
				StartDate:   e.Start.UTC,
				Description: e.Description.Text,
			})
		}
		if !body.Pagination.HasMoreItems {
			return events, nil
		}
	}
}

// ListEventAttendees returns every attendee of one event across all pages.
func (p *HTTPProvider) ListEventAttendees(ctx context.Context, eventID string) ([]Attendee, error) {
	var attendees []Attendee
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/events/%s/attendees/?page=%d", p.base, url.PathEscape(eventID), page)
		var body struct {
			Pagination pagination     `json:"pagination"`
			Attendees  []wireAttendee `json:"attendees"`
		}
		if err := p.get(ctx, endpoint, &body); err != nil {
			return nil, fmt.Errorf("list attendees for event %s page %d: %w", eventID, page, err)
		}
		for _, a := range body.Attendees {
			att := Attendee{
				Name:            a.Profile.Name,
				Email:           a.Profile.Email,
				Created:         a.Created,
				TicketClassName: a.TicketClassName,
			}
			for _, ans := range a.Answers {
				att.Answers = append(att.Answers, Answer{
					QuestionID:   ans.QuestionID,
					QuestionText: ans.Question,
					AnswerText:   ans.Answer,
				})
			}
			attendees = append(attendees, att)
		}
		if !body.Pagination.HasMoreItems {
			return attendees, nil
		}
	}
}

func (p *HTTPProvider) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("events provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

package scraper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

const loginFormSelector = "form#fm1"

func isLoginPage(doc *goquery.Document) bool {
	return doc.Find(loginFormSelector).Length() > 0
}

// login submits the CAS form found on page and returns the planning the server redirects to.
// Hidden fields (lt, execution, _eventId) are sent back untouched.
func (c *Client) login(ctx context.Context, page *goquery.Document, pageURL *url.URL) (*goquery.Document, error) {
	if c.username == "" || c.password == "" {
		return nil, ErrMissingCredentials
	}

	form := page.Find(loginFormSelector).First()

	action, _ := form.Attr("action")
	target, err := pageURL.Parse(action)
	if err != nil {
		return nil, fmt.Errorf("invalid login form action %q: %w", action, err)
	}

	values := url.Values{}
	form.Find("input").Each(func(i int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok || name == "" {
			return
		}
		if t, _ := input.Attr("type"); t == "hidden" {
			val, _ := input.Attr("value")
			values.Set(name, val)
		}
	})
	if btn := form.Find("#submitBtn"); btn.Length() > 0 {
		if name, ok := btn.Attr("name"); ok && name != "" {
			val, _ := btn.Attr("value")
			values.Set(name, val)
		}
	}
	values.Set("username", c.username)
	values.Set("password", c.password)

	resp, err := c.postForm(ctx, target.String(), values)
	if err != nil {
		return nil, fmt.Errorf("failed to submit login form: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page after login: %w", err)
	}

	if isLoginPage(doc) {
		return nil, ErrLoginFailed
	}

	c.log.Debug().Str("user", c.username).Msg("login succeeded")
	return doc, nil
}

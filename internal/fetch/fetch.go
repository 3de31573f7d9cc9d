// Package fetch is the page fetcher collaborator: one GET per source page,
// fixed identification headers, a hard timeout and no retries. Failures are
// returned to the caller, which isolates them per market.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/franruiloz-lab/precios-almendra/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (compatible; PrecioAlmendraScraper/1.0; +https://precioalmendra.com)"

type Client struct {
	http *resty.Client
}

func NewClient() Client {
	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml")
	client.SetHeader("accept-language", "es-ES,es;q=0.9")
	client.SetTimeout(time.Second * 15)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "fetch/http")

	return Client{http: client}
}

// Page fetches a source page and returns its raw markup. A non-200 status
// is a fetch failure like any transport error.
func (c Client) Page(ctx context.Context, url string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetch %s: http %d", url, res.StatusCode())
	}
	return string(res.Body()), nil
}

/*
 * MIT License
 *
 * Copyright (c) 2026 fengmingdev
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package netwatch

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fengmingdev/nexuskit/cache"
	"github.com/fengmingdev/nexuskit/logger"
)

// probeCacheTTL bounds how long a Prober reuses a prior reachability result
// for the same URL before issuing a fresh HEAD request.
const probeCacheTTL = 10 * time.Second

// Prober answers whether an HTTP endpoint is currently reachable. LinkUp's
// interface-level signal says a route exists; Prober confirms something is
// actually listening at the far end of it, the way a captive-portal check
// would.
type Prober interface {
	// Probe issues a HEAD request to url, retrying with backoff per the
	// underlying retryablehttp.Client policy. A cached result younger than
	// probeCacheTTL is returned without a new request.
	Probe(ctx context.Context, url string) (reachable bool, err error)
}

type httpProber struct {
	cli   *retryablehttp.Client
	cache cache.Cache[string, bool]
}

// NewProber returns a Prober backed by retryablehttp's exponential-backoff
// client, with maxRetries attempts per call and results memoized for
// probeCacheTTL so a tight reconnect loop doesn't hammer the same endpoint.
// log follows the package's dependency-injection idiom; a nil log discards
// retryablehttp's own retry/backoff diagnostics.
func NewProber(ctx context.Context, maxRetries int, log logger.FuncLog) Prober {
	cli := retryablehttp.NewClient()
	cli.RetryMax = maxRetries
	cli.Logger = nil
	if log != nil {
		cli.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if l := log(); l != nil && attempt > 0 {
				l.Debug("netwatch: retrying reachability probe", req.URL.String(), attempt)
			}
		}
	}

	return &httpProber{
		cli:   cli,
		cache: cache.New[string, bool](ctx, probeCacheTTL),
	}
}

func (p *httpProber) Probe(ctx context.Context, url string) (bool, error) {
	if v, _, ok := p.cache.Load(url); ok {
		return v, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := p.cli.Do(req)
	if err != nil {
		p.cache.Store(url, false)
		return false, err
	}
	_ = resp.Body.Close()

	reachable := resp.StatusCode < http.StatusInternalServerError
	p.cache.Store(url, reachable)
	return reachable, nil
}

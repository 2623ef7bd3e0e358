package finbook

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Quote is the latest known price for a ticker symbol, with an optional
// conversion rate into the requested currency. Quotes only pre-fill asset
// form fields; they are never authoritative for ledger state.
type Quote struct {
	Symbol   string
	Price    float64
	Currency string
	// Rate converts one unit of the quote currency into the requested
	// currency. Zero when no conversion was requested or available.
	Rate float64
}

const chartEndpoint = "https://query1.finance.yahoo.com/v8/finance/chart/"

// cacheTransport stores successful GET responses on disk under a key that
// includes today's date, so lookups repeat for free within a day and the
// cache expires on its own.
type cacheTransport struct {
	next http.RoundTripper
}

func (t *cacheTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	sum := sha1.Sum([]byte(Today().String() + " " + req.Method + " " + req.URL.String()))
	file := filepath.Join(os.TempDir(), fmt.Sprintf("finbook-quote-%x", sum))

	if content, err := os.ReadFile(file); err == nil {
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%s %s%s %s", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// DumpResponse leaves the response body readable for the caller.
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return resp, nil
	}
	if err := os.WriteFile(file, content, 0o600); err != nil {
		log.Printf("quote cache write failed (ignored): %v", err)
	}
	return resp, nil
}

// fetchJSON GETs addr through the daily cache and unmarshals the JSON body.
func fetchJSON(addr string, out any) error {
	client := &http.Client{Transport: &cacheTransport{http.DefaultTransport}}
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %s: %s", addr, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

/*
	{
	    "chart": {
	        "result": [
	            {
	                "meta": {
	                    "currency": "USD",
	                    "symbol": "AAPL",
	                    "regularMarketPrice": 227.76
	                }
	            }
	        ]
	    }
	}
*/
func chartLatest(symbol string) (price float64, currency string, err error) {
	addr := chartEndpoint + url.PathEscape(symbol) + "?interval=1d&range=1d"
	var jobj any
	if err := fetchJSON(addr, &jobj); err != nil {
		return 0, "", fmt.Errorf("error in wget %q: %w", symbol, err)
	}

	get := func(path string) (any, error) {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
		}
		// because jsonpath is never clear about whether it returns a list of 1
		// answer, or a single answer: by this call I keep the first one if any
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		return jval, nil
	}

	jprice, err := get("$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return 0, "", err
	}
	p, ok := jprice.(float64)
	if !ok {
		return 0, "", fmt.Errorf("error parsing %q: price is not a number: %v", symbol, jprice)
	}
	jcur, err := get("$.chart.result[0].meta.currency")
	if err != nil {
		return 0, "", err
	}
	cur, _ := jcur.(string)
	return p, cur, nil
}

// FetchQuote looks up the latest price for symbol. When the quote's currency
// differs from 'in', the matching FX rate is fetched too, so the caller can
// pre-fill a converted value. Lookup failures are the caller's to surface;
// they never corrupt ledger state.
func FetchQuote(symbol, in string) (*Quote, error) {
	price, currency, err := chartLatest(symbol)
	if err != nil {
		return nil, err
	}
	q := &Quote{Symbol: symbol, Price: price, Currency: currency}
	if in != "" && currency != "" && !strings.EqualFold(currency, in) {
		rate, err := FetchRate(currency, in)
		if err != nil {
			// degraded result: price without conversion
			return q, nil
		}
		q.Rate = rate
	}
	return q, nil
}

// FetchRate returns the latest conversion rate from one currency to another,
// using the same chart endpoint with a currency-pair symbol.
func FetchRate(from, to string) (float64, error) {
	pair := strings.ToUpper(from) + strings.ToUpper(to) + "=X"
	rate, _, err := chartLatest(pair)
	return rate, err
}

package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// UserAgent is sent with every outgoing request, as requested by most mod hosts
const UserAgent = "racoonmc/mcpack installer"

var client = resty.New().SetHeader("User-Agent", UserAgent)

// HTTPClient returns the shared HTTP client, so tests can swap its transport
func HTTPClient() *resty.Client {
	return client
}

// GetJSON fetches the given URL and decodes the response body into out.
func GetJSON(url string, out interface{}) error {
	res, err := client.R().SetHeader("Accept", "application/json").Get(url)
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("invalid response status: %s", res.Status())
	}
	return json.Unmarshal(res.Body(), out)
}

// DownloadFile streams the file at url to destPath, displaying a progress bar
// when the server reports a content length. Any non-2xx response is an error.
// There are no retries; a failed download leaves no usable file behind the
// caller should care about.
func DownloadFile(url string, destPath string) error {
	res, err := client.R().SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return err
	}
	body := res.RawBody()
	defer body.Close()
	if res.IsError() {
		return fmt.Errorf("invalid response status: %s", res.Status())
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	var in io.Reader = body
	var progress *mpb.Progress
	var bar *mpb.Bar
	if length := res.RawResponse.ContentLength; length > 0 {
		progress = mpb.New()
		bar = progress.AddBar(length,
			mpb.PrependDecorators(decor.CountersKibiByte("% .1f / % .1f")),
			mpb.AppendDecorators(decor.Percentage()),
		)
		in = bar.ProxyReader(body)
	}

	_, err = io.Copy(out, in)
	if progress != nil {
		// The bar only completes on a full read; drop it on failure so
		// Wait can't block on a download that died mid-stream
		if err != nil {
			bar.Abort(true)
		}
		progress.Wait()
	}
	if err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

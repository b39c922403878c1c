package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// download fetches url into destination.
// Non 2xx responses are errors; nothing is retried.
func download(ctx context.Context, w io.Writer, client *http.Client, url, destination string) (err error) {
	logdetail(w, fmt.Sprintf("downloading %s", url))
	defer elapsed(w, time.Now(), &err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "setup-updatecli")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("received unexpected response when downloading %s: http%d", url, resp.StatusCode)
	}

	data, finish := progress(resp.Body, resp.ContentLength)
	defer finish()

	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destination, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, data); err != nil {
		return fmt.Errorf("failed to copy data to file %s: %w", destination, err)
	}

	return out.Close()
}

// progress wraps an io.Reader to display a progress bar when running in a terminal.
// Returns the wrapped reader and a function to finalize the progress display.
// The progress bar shows transfer speed and completion percentage.
func progress(reader io.Reader, size int64) (io.Reader, func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{string . "prefix"}}{{counters . }}` +
						` {{bar . "[" "=" ">" " " "]" }} {{percent . }}` +
						` {{speed . }} {{string . "suffix"}}`,
				),
			),
		).
		SetRefreshRate(time.Second / 60).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}

func logstep(w io.Writer, text string) {
	fmt.Fprintln(
		w,
		color.BlueString(" •"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func logdetail(w io.Writer, text string) {
	fmt.Fprintln(
		w,
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

// elapsed prints the time spent since start, marked by the outcome in err.
func elapsed(w io.Writer, start time.Time, err *error) {
	took := time.Since(start).Round(time.Millisecond)
	if *err != nil {
		color.New(color.FgRed).Fprintf(w, "     ✘ %s\n", took)
		return
	}
	color.New(color.FgGreen).Fprintf(w, "     ✔ %s\n", took)
}

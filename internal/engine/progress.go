package engine

import "io"

// ProgressFunc observes upload transfer progress. Values are integers in
// [0, 100] and non-decreasing; 100 is guaranteed only on success.
type ProgressFunc func(percent int)

// progressReader wraps the request body and reports transfer percentage as
// the transport consumes it. It never reports a value lower than one already
// reported, and never reports the same value twice.
type progressReader struct {
	r       io.Reader
	total   int64
	read    int64
	last    int
	observe ProgressFunc
}

func newProgressReader(r io.Reader, total int64, observe ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, last: -1, observe: observe}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.observe == nil || p.total <= 0 {
		return
	}

	percent := int(p.read * 100 / p.total)
	if percent > 100 {
		percent = 100
	}
	if percent <= p.last {
		return
	}

	p.last = percent
	p.observe(percent)
}

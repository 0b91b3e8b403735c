package main

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := _newProgress(&buf, 10, time.Millisecond)

	var wg sync.WaitGroup
	for _, n := range []int64{3, 4} {
		n := n
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Add(n)
		}()
	}
	wg.Wait()
	time.Sleep(50 * time.Millisecond)
	p.Done()

	out := buf.String()
	assert.Contains(t, out, "scanning rows... 70% (7/10)")
	assert.True(t, strings.HasSuffix(out, "\033[1K\r"), "status line not cleared: %q", out)
}

func TestProgressNothingScanned(t *testing.T) {
	var buf bytes.Buffer
	p := _newProgress(&buf, 0, time.Hour)
	p.Done()
	assert.Equal(t, "\033[1K\r", buf.String())
}

package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"sessionkey/internal/domain"
	"sessionkey/internal/wallet"
)

var stdin = newLineReader(os.Stdin)

// readLine reads one trimmed line from stdin, honouring ctx.
func readLine(ctx context.Context) (string, error) {
	return stdin.ReadLine(ctx)
}

type line struct {
	s   string
	err error
}

// lineReader owns its source through a single goroutine, so a prompt
// abandoned on ctx never leaves a second reader racing the next one. A line
// typed after a prompt gave up is delivered to the following prompt.
type lineReader struct {
	src   *bufio.Reader
	once  sync.Once
	lines chan line
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{src: bufio.NewReader(r), lines: make(chan line)}
}

func (r *lineReader) pump() {
	for {
		s, err := r.src.ReadString('\n')
		r.lines <- line{strings.TrimSpace(s), err}
		if err != nil {
			close(r.lines)
			return
		}
	}
}

// ReadLine returns the next trimmed line. After the source is exhausted it
// returns io.EOF.
func (r *lineReader) ReadLine(ctx context.Context) (string, error) {
	r.once.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil && l.s == "" {
			return "", l.err
		}
		return l.s, nil
	}
}

// confirmOnTerminal asks the user to approve a primary wallet signature.
func confirmOnTerminal(ctx context.Context, addr common.Address, text string) (bool, error) {
	fmt.Printf("Primary wallet %s is asked to sign:\n\n  %s\n\nApprove? [y/N] ", addr.Hex(), text)
	answer, err := readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// primarySigner opens the configured primary wallet, optionally behind a
// terminal confirmation.
func primarySigner(confirm bool) (domain.PrimarySigner, error) {
	s, err := appCtx.PrimarySigner()
	if err != nil {
		return nil, err
	}
	if confirm {
		return wallet.Confirming(s, confirmOnTerminal), nil
	}
	return s, nil
}

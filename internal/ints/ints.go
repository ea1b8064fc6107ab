// Package ints holds the integer workloads driven by the stations command:
// random inputs, newline-separated integer files and primality.
package ints

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of integers per chunk read from a file.
const DefaultChunkSize = 4096

// Bound is the magnitude limit of Random: values lie in [-Bound, Bound].
const Bound = 10_000_000

// Random returns n pseudo-random integers in [-Bound, Bound]. The same seed
// always yields the same sequence.
func Random(n int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(2*Bound+1) - Bound
	}
	return out
}

// IsPrime reports whether n is a prime number.
func IsPrime(n int) bool {
	if n == 2 {
		return true
	}
	if n <= 1 || n%2 == 0 {
		return false
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// KeepPrimes removes every non-prime from *xs in place, keeping order.
func KeepPrimes(xs *[]int) {
	*xs = slices.DeleteFunc(*xs, func(v int) bool { return !IsPrime(v) })
}

// EvenSquareNegative is the count benchmark predicate: negative, even, and
// half its square is even.
func EvenSquareNegative(n int) bool {
	return n < 0 && -n%2 == 0 && (n*n/2)%2 == 0
}

// Reader reads newline-separated integers in chunks. Reading stops at the
// first empty line or at the end of the input.
type Reader struct {
	sc        *bufio.Scanner
	chunkSize int
	line      int
	done      bool
}

// NewReader returns a Reader over r. A chunkSize <= 0 uses DefaultChunkSize.
func NewReader(r io.Reader, chunkSize int) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Reader{sc: bufio.NewScanner(r), chunkSize: chunkSize}
}

// ChunkSize returns the maximum length of a chunk.
func (r *Reader) ChunkSize() int {
	return r.chunkSize
}

// Next returns the next chunk. It returns io.EOF once the input is exhausted;
// a partial final chunk is returned with a nil error first.
func (r *Reader) Next() ([]int, error) {
	if r.done {
		return nil, io.EOF
	}

	chunk := make([]int, 0, r.chunkSize)
	for len(chunk) < r.chunkSize {
		if !r.sc.Scan() {
			r.done = true
			if err := r.sc.Err(); err != nil {
				return nil, err
			}
			break
		}
		r.line++

		text := strings.TrimSpace(r.sc.Text())
		if text == "" {
			r.done = true
			break
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		chunk = append(chunk, v)
	}

	if len(chunk) == 0 {
		return nil, io.EOF
	}
	return chunk, nil
}

// ReadFile reads every chunk of the file at path. A leading ~ is expanded to
// the home directory.
func ReadFile(path string, chunkSize int) ([][]int, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var chunks [][]int
	r := NewReader(f, chunkSize)
	for {
		chunk, err := r.Next()
		if err == io.EOF {
			return chunks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		chunks = append(chunks, chunk)
	}
}

// ReadFiles reads the given files concurrently. The chunks are returned in
// file order, then in file position order.
func ReadFiles(ctx context.Context, paths []string, chunkSize int) ([][]int, error) {
	perFile := make([][][]int, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks, err := ReadFile(path, chunkSize)
			if err != nil {
				return err
			}
			perFile[i] = chunks
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out [][]int
	for _, chunks := range perFile {
		out = append(out, chunks...)
	}
	return out, nil
}

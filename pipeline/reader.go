package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/kbukum/pktchain/filter"
	"github.com/kbukum/pktchain/packet"
)

// FromReader reads packets from r, one per sep-terminated record. A final
// record without a trailing sep is still emitted. With an empty sep the
// whole input is one packet.
func FromReader(r io.Reader, sep string) *Pipeline[*packet.Packet] {
	return &Pipeline[*packet.Packet]{
		create: func(_ context.Context) Iterator[*packet.Packet] {
			sc := bufio.NewScanner(r)
			sc.Buffer(make([]byte, 0, 64*1024), filter.MaxPacketSize)
			sc.Split(splitOn([]byte(sep)))
			return &scanIter{sc: sc}
		},
	}
}

func splitOn(sep []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if len(sep) > 0 {
			if i := bytes.Index(data, sep); i >= 0 {
				return i + len(sep), data[:i], nil
			}
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

type scanIter struct {
	sc *bufio.Scanner
}

func (it *scanIter) Next(ctx context.Context) (*packet.Packet, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if !it.sc.Scan() {
		return nil, false, it.sc.Err()
	}
	return packet.New(bytes.Clone(it.sc.Bytes())), true, nil
}

func (it *scanIter) Close() error { return nil }

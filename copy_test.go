package lz4

import (
	"bytes"
	"fmt"
	"testing"
)

// referenceBackRef is the byte-at-a-time definition both copy routines must
// agree with.
func referenceBackRef(dst []byte, outputPos, dist, length int) {
	for i := 0; i < length; i++ {
		dst[outputPos+i] = dst[outputPos-dist+i]
	}
}

func backRefFixture(pos int) []byte {
	buf := make([]byte, pos+256)
	for i := range buf {
		buf[i] = byte(i*31 + 7)
	}
	return buf
}

func TestCopyBackRef(t *testing.T) {
	const pos = 64

	for _, tc := range []struct{ dist, length int }{
		{1, 1}, {1, 20}, {2, 17}, {3, 10}, {4, 64},
		{7, 7}, {8, 40}, {16, 16}, {20, 100}, {64, 10},
	} {
		t.Run(fmt.Sprintf("dist-%d-len-%d", tc.dist, tc.length), func(t *testing.T) {
			got := backRefFixture(pos)
			want := backRefFixture(pos)

			copyBackRef(got, pos, tc.dist, tc.length)
			referenceBackRef(want, pos, tc.dist, tc.length)

			if !bytes.Equal(got, want) {
				t.Fatal("copyBackRef diverges from the byte-at-a-time reference")
			}
		})
	}
}

func TestWildCopyBackRef(t *testing.T) {
	// wild copies may round up to a stride multiple, so only the requested
	// range is compared; distances below the stride floor are the callers'
	// responsibility to avoid
	const pos = 80

	for dist := wildCopyLength; dist <= 24; dist++ {
		for _, length := range []int{4, 8, 13, 31, 70} {
			t.Run(fmt.Sprintf("dist-%d-len-%d", dist, length), func(t *testing.T) {
				got := backRefFixture(pos)
				want := backRefFixture(pos)

				wildCopyBackRef(got, pos, dist, length)
				referenceBackRef(want, pos, dist, length)

				if !bytes.Equal(got[:pos+length], want[:pos+length]) {
					t.Fatal("wildCopyBackRef diverges in the requested range")
				}
			})
		}
	}
}

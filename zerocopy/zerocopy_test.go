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
 *
 *
 */

package zerocopy_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fengmingdev/nexuskit/zerocopy"
)

// borrowable is a test Borrower over a fixed backing array.
type borrowable struct {
	data []byte
}

func (b *borrowable) Borrow(offset, length int) ([]byte, bool) {
	if offset < 0 || length < 0 || offset+length > len(b.data) {
		return nil, false
	}
	return b.data[offset : offset+length], true
}

var _ = Describe("Tracker", func() {
	Describe("MakeReference over a Borrower", func() {
		It("should borrow without copying", func() {
			tr := zerocopy.New()
			src := &borrowable{data: []byte("hello world")}

			ref := tr.MakeReference(src, 0, 5)
			Expect(ref.Len()).To(Equal(5))

			var got []byte
			Expect(ref.Transfer(func(p []byte) error {
				got = p
				return nil
			})).To(Succeed())
			Expect(got).To(Equal([]byte("hello")))

			Expect(tr.Stats().ZeroCopyTransfers).To(BeEquivalentTo(1))
			Expect(tr.Stats().FallbackTransfers).To(BeEquivalentTo(0))
		})

		It("should mark the reference consumed after Transfer", func() {
			tr := zerocopy.New()
			src := &borrowable{data: []byte("hello world")}

			ref := tr.MakeReference(src, 0, 5)
			Expect(ref.Transfer(func(p []byte) error { return nil })).To(Succeed())
			Expect(ref.Consumed()).To(BeTrue())

			err := ref.Transfer(func(p []byte) error { return nil })
			Expect(err).To(MatchError(zerocopy.ErrConsumed))
		})
	})

	Describe("MakeReference over a plain []byte", func() {
		It("should fall back to a copy", func() {
			tr := zerocopy.New()
			src := []byte("hello world")

			ref := tr.MakeReference(src, 6, 5)

			var got []byte
			Expect(ref.Transfer(func(p []byte) error {
				got = p
				return nil
			})).To(Succeed())
			Expect(got).To(Equal([]byte("world")))

			Expect(tr.Stats().FallbackTransfers).To(BeEquivalentTo(1))
			Expect(tr.Stats().BytesCopied).To(BeEquivalentTo(5))
		})
	})

	Describe("ScatterGather", func() {
		It("should hand the sink each slice without concatenating", func() {
			tr := zerocopy.New()
			src := &borrowable{data: []byte("abcdef")}

			refs := []zerocopy.Reference{
				tr.MakeReference(src, 0, 3),
				tr.MakeReference(src, 3, 3),
			}

			var got [][]byte
			Expect(tr.ScatterGather(refs, func(slices [][]byte) error {
				got = slices
				return nil
			})).To(Succeed())

			Expect(got).To(HaveLen(2))
			Expect(got[0]).To(Equal([]byte("abc")))
			Expect(got[1]).To(Equal([]byte("def")))
		})
	})

	Describe("Gather", func() {
		It("should concatenate every reference into one copy", func() {
			tr := zerocopy.New()
			src := &borrowable{data: []byte("abcdef")}

			refs := []zerocopy.Reference{
				tr.MakeReference(src, 0, 3),
				tr.MakeReference(src, 3, 3),
			}

			out, err := tr.Gather(refs)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal([]byte("abcdef")))
		})
	})

	Describe("Stats", func() {
		It("should compute ZeroCopyRate and CopySavings", func() {
			tr := zerocopy.New()
			borrowed := &borrowable{data: []byte("0123456789")}
			plain := []byte("0123456789")

			_ = tr.MakeReference(borrowed, 0, 4).Transfer(func(p []byte) error { return nil })
			_ = tr.MakeReference(plain, 0, 4).Transfer(func(p []byte) error { return nil })

			s := tr.Stats()
			Expect(s.ZeroCopyRate()).To(BeNumerically("~", 0.5, 0.001))
			Expect(s.CopySavings()).To(BeNumerically("~", 0.5, 0.001))
		})

		It("should report zero rates before any transfer", func() {
			var s zerocopy.Stats
			Expect(s.ZeroCopyRate()).To(Equal(0.0))
			Expect(s.CopySavings()).To(Equal(0.0))
		})
	})
})

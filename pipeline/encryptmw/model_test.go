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
 */

package encryptmw_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	encaes "github.com/fengmingdev/nexuskit/encoding/aes"
	"github.com/fengmingdev/nexuskit/pipeline"
	"github.com/fengmingdev/nexuskit/pipeline/encryptmw"
)

var _ = Describe("Middleware", func() {
	It("round-trips plaintext through Encode then Decode", func() {
		key, kerr := encaes.GenKey()
		Expect(kerr).ToNot(HaveOccurred())
		nonce, nerr := encaes.GenNonce()
		Expect(nerr).ToNot(HaveOccurred())

		mw, err := encryptmw.New(key, nonce)
		Expect(err).ToNot(HaveOccurred())

		ctx := pipeline.Context{ConnectionID: "c1"}
		sealed, oerr := mw.OnOutgoing(ctx, []byte("hello world"))
		Expect(oerr).ToNot(HaveOccurred())
		Expect(sealed).ToNot(Equal([]byte("hello world")))

		opened, ierr := mw.OnIncoming(ctx, sealed)
		Expect(ierr).ToNot(HaveOccurred())
		Expect(opened).To(Equal([]byte("hello world")))
	})

	It("fails to decode data sealed under a different key", func() {
		key1, _ := encaes.GenKey()
		key2, _ := encaes.GenKey()
		nonce, _ := encaes.GenNonce()

		mw1, err := encryptmw.New(key1, nonce)
		Expect(err).ToNot(HaveOccurred())
		mw2, err := encryptmw.New(key2, nonce)
		Expect(err).ToNot(HaveOccurred())

		ctx := pipeline.Context{}
		sealed, _ := mw1.OnOutgoing(ctx, []byte("secret"))

		_, err = mw2.OnIncoming(ctx, sealed)
		Expect(err).To(HaveOccurred())
	})

	It("defaults to a priority that runs after compression on outgoing", func() {
		key, _ := encaes.GenKey()
		nonce, _ := encaes.GenNonce()
		mw, err := encryptmw.New(key, nonce)
		Expect(err).ToNot(HaveOccurred())
		Expect(mw.Priority()).To(BeNumerically(">", 0))
		Expect(mw.Name()).To(Equal("aes-gcm"))
	})
})

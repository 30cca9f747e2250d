package bench_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fifobench/bench"
)

var _ = Describe("Request", func() {
	It("should carry a unique ID", func() {
		a := bench.NewRequest(bench.Write)
		b := bench.NewRequest(bench.Read)

		Expect(a.ID).NotTo(BeEmpty())
		Expect(b.ID).NotTo(BeEmpty())
		Expect(a.ID).NotTo(Equal(b.ID))
	})

	It("should name its kind", func() {
		Expect(bench.Write.String()).To(Equal("write"))
		Expect(bench.Read.String()).To(Equal("read"))
	})
})

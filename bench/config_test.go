package bench_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fifobench/bench"
)

var _ = Describe("Config", func() {
	It("should provide valid defaults", func() {
		cfg := bench.DefaultConfig()

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Count).To(Equal(30))
		Expect(cfg.PayloadMin).To(Equal(byte(1)))
		Expect(cfg.PayloadMax).To(Equal(byte(20)))
	})

	It("should reject a non-positive count", func() {
		cfg := bench.DefaultConfig()
		cfg.Count = 0

		Expect(cfg.Validate()).To(MatchError(ContainSubstring("count")))
	})

	It("should reject a zero reset hold", func() {
		cfg := bench.DefaultConfig()
		cfg.ResetCycles = 0

		Expect(cfg.Validate()).To(MatchError(ContainSubstring("reset_cycles")))
	})

	It("should reject an inverted payload range", func() {
		cfg := bench.DefaultConfig()
		cfg.PayloadMin = 30
		cfg.PayloadMax = 20

		Expect(cfg.Validate()).To(MatchError(ContainSubstring("payload_min")))
	})

	It("should round-trip through a JSON file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bench.json")

		cfg := bench.DefaultConfig()
		cfg.Count = 128
		cfg.Seed = 99
		Expect(cfg.SaveConfig(path)).To(Succeed())

		loaded, err := bench.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(cfg))
	})

	It("should keep defaults for fields missing from the file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bench.json")
		Expect(os.WriteFile(path, []byte(`{"count": 7}`), 0644)).To(Succeed())

		loaded, err := bench.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Count).To(Equal(7))
		Expect(loaded.ResetCycles).To(Equal(3))
		Expect(loaded.PayloadMax).To(Equal(byte(20)))
	})

	It("should fail on a missing file", func() {
		_, err := bench.LoadConfig("/nonexistent/bench.json")

		Expect(err).To(HaveOccurred())
	})

	It("should clone without aliasing", func() {
		cfg := bench.DefaultConfig()
		clone := cfg.Clone()
		clone.Count = 1

		Expect(cfg.Count).To(Equal(30))
	})
})

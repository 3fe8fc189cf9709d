package lookup

import (
	"context"
	"testing"
)

// BenchmarkBranchByMode compares a single branch lookup across the in-process
// modes. On-demand pays for two file reads and JSON decodes per call.
func BenchmarkBranchByMode(b *testing.B) {
	for name, src := range sources(b) {
		b.Run(name, func(b *testing.B) {
			ctx := context.Background()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, ok, err := src.Branch(ctx, "0001", "988"); !ok || err != nil {
					b.Fatalf("Branch = %v %v", ok, err)
				}
			}
		})
	}
}

// BenchmarkPreloadedParallel measures concurrent read throughput against the
// shared index.
func BenchmarkPreloadedParallel(b *testing.B) {
	src := sources(b)["preloaded"]
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, ok, _ := src.Bank(ctx, "0001"); !ok {
				b.Error("bank 0001 missing")
				return
			}
		}
	})
}

package detect

import "os"

// fileSize returns the size of the audio file in bytes, or 0 when the
// file cannot be statted. Cost estimation must never fail, so callers
// treat 0 as "unknown" and substitute their documented defaults.
func fileSize(audioPath string) int64 {
	fi, err := os.Stat(audioPath)
	if err != nil {
		return 0
	}
	return fi.Size()
}

// estimateByMinutes derives a duration-based estimate from file size,
// assuming roughly 1 MiB of compressed audio per minute. unitsPerMin
// and dollarsPerMin encode the vendor's pricing; def is the documented
// fallback when the file size is unknown.
func estimateByMinutes(audioPath string, unitsPerMin int64, dollarsPerMin float64, def CostEstimate) CostEstimate {
	size := fileSize(audioPath)
	if size <= 0 {
		return def
	}
	minutes := float64(size) / (1024 * 1024)
	if minutes < 0.1 {
		minutes = 0.1
	}
	return CostEstimate{
		UnitCount:    int64(minutes * float64(unitsPerMin)),
		MonetaryCost: minutes * dollarsPerMin,
	}
}

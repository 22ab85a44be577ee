package util

// MetricsBucketsMicroSeconds defines histogram buckets for microsecond-level latency measurements.
// Buckets range from 16μs to 262ms in exponential progression.
var MetricsBucketsMicroSeconds = []float64{
	16e-6, 32e-6, 64e-6, 128e-6, 256e-6, 512e-6, 1024e-6, 4096e-6, 16384e-6, 65536e-6, 262144e-6,
}

// MetricsBucketsMilliSeconds defines histogram buckets for millisecond-level latency measurements.
// Buckets range from 1ms to 4s in exponential progression.
var MetricsBucketsMilliSeconds = []float64{
	1e-3, 2e-3, 4e-3, 16e-3, 32e-3, 64e-3, 128e-3, 256e-3, 512e-3, 1024e-3, 2048e-3, 4096e-3,
}

// MetricsBucketsCount defines histogram buckets for item counts such as batch sizes.
var MetricsBucketsCount = []float64{
	1, 2, 4, 8, 16, 32, 64, 128, 256, 1024, 4096, 16384, 65536,
}

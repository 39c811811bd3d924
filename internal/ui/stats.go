package ui

import "sync/atomic"

type Stats struct {
	TotalCompanies atomic.Int64
	TotalJobs      atomic.Int64
	NewJobs        atomic.Int64
	Failed         atomic.Int64
}

package service

import (
	"runtime"
	"time"

	"postboard/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/atomic"
)

var (
	startTime    = time.Now()
	requestCount atomic.Int64
)

// CountRequest increments the served-request counter. The request counting
// middleware calls it once per request.
func CountRequest() {
	requestCount.Inc()
}

// RequestTotal returns the number of requests served since start.
func RequestTotal() int64 {
	return requestCount.Load()
}

// Status is the snapshot returned by the status endpoint: host figures from
// gopsutil, process figures from the Go runtime, and table counts.
type Status struct {
	Cpu        float64 `json:"cpu"`
	CpuCores   int     `json:"cpuCores"`
	LogicalPro int     `json:"logicalPro"`
	Mem        struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime   uint64    `json:"uptime"`
	Loads    []float64 `json:"loads"`
	AppStats struct {
		Goroutines int    `json:"goroutines"`
		Mem        uint64 `json:"mem"`
		Uptime     uint64 `json:"uptime"`
		Requests   int64  `json:"requests"`
	} `json:"appStats"`
	Counts struct {
		Users int64 `json:"users"`
		Posts int64 `json:"posts"`
		Votes int64 `json:"votes"`
	} `json:"counts"`
}

// StatusService assembles the status snapshot.
type StatusService struct {
	userService UserService
	postService PostService
	voteService VoteService
}

func (s *StatusService) GetStatus() *Status {
	status := &Status{}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	status.CpuCores, err = cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu cores count failed:", err)
	}
	status.LogicalPro = runtime.NumCPU()

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	var rtm runtime.MemStats
	runtime.ReadMemStats(&rtm)
	status.AppStats.Goroutines = runtime.NumGoroutine()
	status.AppStats.Mem = rtm.Sys
	status.AppStats.Uptime = uint64(time.Since(startTime).Seconds())
	status.AppStats.Requests = RequestTotal()

	if users, err := s.userService.CountUsers(); err != nil {
		logger.Warning("count users failed:", err)
	} else {
		status.Counts.Users = users
	}
	if posts, err := s.postService.CountPosts(); err != nil {
		logger.Warning("count posts failed:", err)
	} else {
		status.Counts.Posts = posts
	}
	if votes, err := s.voteService.CountVotes(); err != nil {
		logger.Warning("count votes failed:", err)
	} else {
		status.Counts.Votes = votes
	}

	return status
}

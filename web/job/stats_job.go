package job

import (
	"os"

	"postboard/config"
	"postboard/database"
	"postboard/logger"
	"postboard/util/common"
	"postboard/web/service"
)

// StatsJob writes a daily snapshot of data volume and traffic to the log.
type StatsJob struct {
	userService service.UserService
	postService service.PostService
	voteService service.VoteService
}

func NewStatsJob() *StatsJob {
	return new(StatsJob)
}

func (j *StatsJob) Run() {
	users, err := j.userService.CountUsers()
	if err != nil {
		logger.Warning("stats job count users err:", err)
		return
	}
	posts, err := j.postService.CountPosts()
	if err != nil {
		logger.Warning("stats job count posts err:", err)
		return
	}
	votes, err := j.voteService.CountVotes()
	if err != nil {
		logger.Warning("stats job count votes err:", err)
		return
	}

	dbSize := "n/a"
	if database.IsSQLite() {
		if info, err := os.Stat(config.GetDBPath()); err == nil {
			dbSize = common.FormatBytes(info.Size())
		}
	}

	logger.Infof("daily stats: users=%d posts=%d votes=%d requests=%d db=%s",
		users, posts, votes, service.RequestTotal(), dbSize)
}

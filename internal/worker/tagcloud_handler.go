package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// TagCloudRefreshHandler recomputes the tag cloud on the periodic schedule
// so the cached cloud never serves stale counts for long.
type TagCloudRefreshHandler struct {
	tagService *service.TagService
}

func NewTagCloudRefreshHandler(tagService *service.TagService) *TagCloudRefreshHandler {
	if tagService == nil {
		panic("TagService cannot be nil for TagCloudRefreshHandler")
	}
	return &TagCloudRefreshHandler{tagService: tagService}
}

// ProcessTask implements asynq.Handler.
func (h *TagCloudRefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	taskID := ""
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	logCtx := logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
	})
	logCtx.Info("Processing tag cloud refresh task...")

	refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cloud, err := h.tagService.RefreshTagCloud(refreshCtx)
	if err != nil {
		logCtx.WithError(err).Error("Tag cloud refresh failed")
		return fmt.Errorf("tag cloud refresh: %w", err)
	}

	logCtx.WithField("tag_count", len(cloud)).Info("Tag cloud refresh task processed successfully")
	return nil
}

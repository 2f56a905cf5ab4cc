package main

import (
	"github.com/milk9111/rigidsync/ecs/bodysync"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// snapshotClipboard copies body snapshots to the system clipboard as YAML.
type snapshotClipboard struct {
	logger *zap.Logger
	ready  bool
}

func newSnapshotClipboard(logger *zap.Logger) *snapshotClipboard {
	c := &snapshotClipboard{logger: logger}
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable; snapshots will be logged", zap.Error(err))
		return c
	}
	c.ready = true
	return c
}

func (c *snapshotClipboard) Copy(snaps []bodysync.BodySnapshot) {
	data, err := bodysync.MarshalSnapshot(snaps)
	if err != nil {
		c.logger.Warn("snapshot marshal failed", zap.Error(err))
		return
	}
	if !c.ready {
		c.logger.Info("body snapshot", zap.ByteString("yaml", data))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	c.logger.Info("body snapshot copied", zap.Int("bodies", len(snaps)))
}

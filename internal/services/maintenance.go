package services

import (
	"context"
	"time"

	"github.com/gestion-rh/apiserver/internal/audit"
	"github.com/gestion-rh/apiserver/internal/sysmon"
	"github.com/op/go-logging"
)

// backupDelay mimics the duration of the legacy backup simulation. There is no
// real backup I/O behind this endpoint.
const backupDelay = 2 * time.Second

// MaintenanceService reports host utilisation and runs the simulated backup.
type MaintenanceService struct {
	monitor  *sysmon.Monitor
	log      *logging.Logger
	recorder *audit.Recorder
}

func NewMaintenanceService(monitor *sysmon.Monitor, log *logging.Logger, recorder *audit.Recorder) *MaintenanceService {
	return &MaintenanceService{monitor: monitor, log: log, recorder: recorder}
}

// Status returns the current cpu/memory/disk utilisation snapshot.
func (s *MaintenanceService) Status(ctx context.Context) (sysmon.Snapshot, error) {
	return s.monitor.Collect(ctx)
}

// Backup simulates a backup with a fixed delay, honoring cancellation.
func (s *MaintenanceService) Backup(ctx context.Context) error {
	select {
	case <-time.After(backupDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	s.log.Info("sauvegarde simulée effectuée")
	s.recorder.Backup(ctx)
	return nil
}

// CLAUDE:SUMMARY Xvfb virtual display lifecycle for headful mode — geometry from config, local-only socket.
package browser

import (
	"fmt"
	"os/exec"
	"time"
)

// startXvfb launches the virtual display headful mode renders into. The
// socket is local-only; nothing outside this host ever talks to it.
func (m *Manager) startXvfb() error {
	if m.xvfb != nil {
		return nil // already running
	}

	display := m.cfg.XvfbDisplay
	cmd := exec.Command("Xvfb", display,
		"-screen", "0", m.cfg.XvfbGeometry,
		"-nolisten", "tcp",
		"-ac")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start xvfb: %w", err)
	}
	m.xvfb = cmd

	// Xvfb has no readiness signal; Chrome fails to connect if the
	// display socket is not up yet.
	time.Sleep(500 * time.Millisecond)

	m.cfg.Logger.Info("browser: xvfb started",
		"display", display, "geometry", m.cfg.XvfbGeometry, "pid", cmd.Process.Pid)
	return nil
}

// stopXvfb tears the virtual display down with the Chrome it hosted.
func (m *Manager) stopXvfb() {
	if m.xvfb == nil {
		return
	}
	if m.xvfb.Process != nil {
		m.xvfb.Process.Kill()
		m.xvfb.Wait()
	}
	m.cfg.Logger.Info("browser: xvfb stopped")
	m.xvfb = nil
}

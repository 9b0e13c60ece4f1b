// Package portprobe answers "is this host port already taken, and by whom"
// for the compose port rule. Both answers are best effort and point-in-time:
// a probe failure reads as "not in use" and an unreadable process table as
// "owner unknown", never as an analysis failure.
package portprobe

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/checkdk/checkdk/internal/domain"
)

const connectTimeout = 500 * time.Millisecond

// Prober implements domain.PortProber against the local host.
type Prober struct{}

// New creates a Prober.
func New() *Prober { return &Prober{} }

// InUse reports whether something on this host accepts TCP connections on
// the port right now.
func (p *Prober) InUse(port int) bool {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("localhost:%d", port), connectTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Owner resolves the listening process for a bound port from the host's
// connection table. When the process itself cannot be inspected the PID is
// still returned with name "unknown".
func (p *Prober) Owner(port int) (domain.ProcessInfo, bool) {
	conns, err := gnet.Connections("inet")
	if err != nil {
		slog.Debug("reading connection table failed", "error", err)
		return domain.ProcessInfo{}, false
	}
	for _, conn := range conns {
		if conn.Laddr.Port != uint32(port) || conn.Status != "LISTEN" {
			continue
		}
		proc, err := process.NewProcess(conn.Pid)
		if err != nil {
			return domain.ProcessInfo{PID: conn.Pid, Name: "unknown"}, true
		}
		name, err := proc.Name()
		if err != nil {
			return domain.ProcessInfo{PID: conn.Pid, Name: "unknown"}, true
		}
		info := domain.ProcessInfo{PID: conn.Pid, Name: name}
		if args, err := proc.CmdlineSlice(); err == nil && len(args) > 0 {
			if len(args) > 3 {
				args = args[:3]
			}
			info.Cmdline = strings.Join(args, " ")
		}
		return info, true
	}
	return domain.ProcessInfo{}, false
}

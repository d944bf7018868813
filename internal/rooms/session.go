package rooms

import (
	"time"
)

const idleSessionTimeout = 5 * time.Minute

// session serializes every mutating operation for one room. Commands
// are executed strictly in arrival order by a single goroutine, which
// closes the check-then-insert races a shared store would otherwise
// allow. Idle sessions unload themselves.
type session struct {
	roomId int
	cmds   chan func()
	exit   chan struct{}
	done   chan struct{}
}

func newSession(roomId int) *session {
	return &session{
		roomId: roomId,
		cmds:   make(chan func(), 64),
		exit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (s *session) run(c *Coordinator) {
	idle := time.NewTimer(idleSessionTimeout)
	defer idle.Stop()

	for {
		select {
		case cmd := <-s.cmds:
			cmd()
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(idleSessionTimeout)
		case <-idle.C:
			if c.tryUnloadSession(s) {
				return
			}
			idle.Reset(idleSessionTimeout)
		case <-s.exit:
			close(s.done)
			return
		}
	}
}

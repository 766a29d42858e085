package system

import "time"

// Phase defines execution ordering within a single outer loop iteration.
type Phase int

const (
	PhaseInput   Phase = iota // 0: poll the terminal, dispatch key presses
	PhaseEvents               // 1: deliver last frame's events
	PhaseUpdate               // 2: simulate one level frame
	PhaseOutput               // 3: present the frame
	PhasePersist              // 4: flush finished-level records
)

// System is one stage of the outer game loop.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

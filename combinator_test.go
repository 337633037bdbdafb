// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eventual"
)

// doublingTerminal adapts a TerminalStage[int] into a TerminalStage[int]
// that doubles the value before forwarding it, exercising Pipe directly.
type doublingTerminal struct {
	downstream eventual.TerminalStage[int]
}

func (d doublingTerminal) Start(v int)    { d.downstream.Start(v * 2) }
func (d doublingTerminal) Fail(err error) { d.downstream.Fail(err) }
func (d doublingTerminal) Stop()          { d.downstream.Stop() }

func (d doublingTerminal) Register(i *eventual.Interrupt) { d.downstream.Register(i) }

func TestPipeAdaptsTerminalType(t *testing.T) {
	doubled := eventual.Pipe(eventual.Just(21), func(downstream eventual.TerminalStage[int]) eventual.TerminalStage[int] {
		return doublingTerminal{downstream: downstream}
	})

	var got int
	stage, _ := eventual.Build(doubled, recordTerminal[int]{start: func(v int) { got = v }})
	stage.Start()
	require.Equal(t, 42, got)
}

func TestBuildReturnsUntriggeredInterrupt(t *testing.T) {
	e := eventual.Then(eventual.Just(1), func(v int) eventual.Expression[int] {
		return eventual.Just(v)
	})

	_, interrupt := eventual.Build(e, recordTerminal[int]{})
	require.NotNil(t, interrupt)
	require.False(t, interrupt.Triggered())
}

func TestBuildStreamReturnsUntriggeredInterrupt(t *testing.T) {
	_, interrupt := eventual.BuildStream(eventual.Range(0, 3, 1), recordStreamTerminal[int]{})
	require.NotNil(t, interrupt)
	require.False(t, interrupt.Triggered())
}

package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverbz/dsp/arena"
	"github.com/cwbudde/algo-reverbz/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverbz/dsp/params"
)

func ExampleNewPlan() {
	p, err := reverb.NewPlan(96000)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(p.Capacity(), p.Taps().TankDelays)
	fmt.Printf("max predelay %.2f ms\n", p.MaxPredelayMs())

	// Output:
	// 16384 [14364 13603 12000 10203]
	// max predelay 170.66 ms
}

func ExamplePlan_Initialize() {
	p, err := reverb.NewPlan(48000, reverb.WithMaxBlockSize(256))
	if err != nil {
		fmt.Println(err)
		return
	}

	a, err := arena.New(p.RequiredBytes())
	if err != nil {
		fmt.Println(err)
		return
	}

	c := params.DefaultControls()
	c.PredelayMs = 50

	e, err := p.Initialize(a, c)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("arena left:", a.Remaining(), "sealed:", a.Sealed())

	onset := -1
	for i := range 10000 {
		x := 0.0
		if i == 0 {
			x = 1
		}

		if y := e.ProcessMono(x); y != 0 && onset < 0 {
			onset = i
		}
	}

	fmt.Println("first reflection at sample", onset)

	// Output:
	// arena left: 0 sealed: true
	// first reflection at sample 8400
}

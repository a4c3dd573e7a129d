package utility

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/pkg/errors"
)


// manages the TUI for real-time training monitoring.
type TrainingDashboard struct {
	grid *ui.Grid

	lossPlot     *widgets.Plot
	gradNormPlot *widgets.Plot

	progressGauge *widgets.Gauge
	progressList  *widgets.List
	systemList    *widgets.List
	logParagraph  *widgets.Paragraph

	fullLossData     []float64
	fullGradNormData []float64
	renderMutex      sync.Mutex
}


func NewTrainingDashboard(learningRate float64, samples int, steps int) (*TrainingDashboard, error) {
	if err := ui.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize termui")
	}

	d := &TrainingDashboard{
		fullLossData:     []float64{0, 0},
		fullGradNormData: []float64{0, 0},
	}

	d.lossPlot = widgets.NewPlot()
	d.lossPlot.Title = "Training Loss"
	d.lossPlot.Data = [][]float64{d.fullLossData} 
	d.lossPlot.LineColors[0] = ui.ColorRed

	d.gradNormPlot = widgets.NewPlot()
	d.gradNormPlot.Title = "Gradient L2 Norm"
	d.gradNormPlot.Data = [][]float64{d.fullGradNormData}
	d.gradNormPlot.LineColors[0] = ui.ColorGreen

	d.progressGauge = widgets.NewGauge()
	d.progressGauge.Title = "Training Progress"
	d.progressGauge.BarColor = ui.ColorBlue
	d.systemList = widgets.NewList()
	d.systemList.Title = "System & Timing"
	d.progressList = widgets.NewList()
	d.progressList.Title = "Training Status"
	hyperParamList := widgets.NewList()
	hyperParamList.Title = "Hyperparameters"
	hyperParamList.Rows = []string{
		fmt.Sprintf("Steps: %d", steps),
		fmt.Sprintf("Samples: %d", samples),
		fmt.Sprintf("Learn Rate: %.4f", learningRate),
	}
	d.logParagraph = widgets.NewParagraph()
	d.logParagraph.Title = "Event Log"

	d.grid = ui.NewGrid()
	termWidth, termHeight := ui.TerminalDimensions()
	d.grid.SetRect(0, 0, termWidth, termHeight)
	d.grid.Set(
		ui.NewRow(0.4, ui.NewCol(0.5, d.lossPlot), ui.NewCol(0.5, d.gradNormPlot)),
		ui.NewRow(0.3, ui.NewCol(0.34, d.progressList), ui.NewCol(0.33, d.systemList), ui.NewCol(0.33, hyperParamList)),
		ui.NewRow(0.3, ui.NewCol(1.0, ui.NewRow(0.4, d.progressGauge), ui.NewRow(0.6, d.logParagraph))),
	)

	return d, nil
}


// downsample averages a slice of data to fit a target width [as i wanted the graph to be restricted within the grid]
func (d *TrainingDashboard) downsample(data []float64, targetWidth int) []float64 {
	if targetWidth <= 0 || len(data) <= targetWidth {
		return data 
	}

	downsampled := make([]float64, targetWidth)
	binSize := float64(len(data)) / float64(targetWidth)

	for i := 0; i < targetWidth; i++ {
		start := int(float64(i) * binSize)
		end := int(float64(i+1) * binSize)
		if end > len(data) {
			end = len(data)
		}

		bin := data[start:end]
		if len(bin) == 0 {
			if i > 0 {
				downsampled[i] = downsampled[i-1] 
			} else {
				downsampled[i] = 0
			}
			continue
		}

		var sum float64
		for _, v := range bin {
			sum += v
		}
		downsampled[i] = sum / float64(len(bin))
	}
	return downsampled
}


// update the dashboard after a training step.
func (d *TrainingDashboard) UpdateStats(step, totalSteps int, loss float64, startTime time.Time) {
	d.renderMutex.Lock()
	defer d.renderMutex.Unlock()

	d.progressList.Rows = []string{
		fmt.Sprintf("Step: %d / %d", step, totalSteps),
		fmt.Sprintf("Loss: %.6f", loss),
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	elapsed := time.Since(startTime)
	var eta time.Duration
	if step > 0 {
		perStep := elapsed / time.Duration(step)
		eta = perStep * time.Duration(totalSteps-step)
	}
	d.systemList.Rows = []string{
		fmt.Sprintf("Elapsed: %v", elapsed.Round(time.Millisecond)),
		fmt.Sprintf("ETA: %v", eta.Round(time.Millisecond)),
		"---",
		fmt.Sprintf("Heap Alloc: %d MiB", memStats.Alloc/1024/1024),
		fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()),
	}
	if totalSteps > 0 {
		d.progressGauge.Percent = int(float64(step) / float64(totalSteps) * 100)
	}

	d.lossPlot.Data[0] = d.downsample(d.fullLossData, d.lossPlot.Inner.Dx())
	d.gradNormPlot.Data[0] = d.downsample(d.fullGradNormData, d.gradNormPlot.Inner.Dx())

	ui.Render(d.grid)
}


// appends a new loss and gradient norm to the full history.
func (d *TrainingDashboard) Record(loss, gradNorm float64) {
	d.renderMutex.Lock()
	defer d.renderMutex.Unlock()
	d.fullLossData = append(d.fullLossData, loss)
	d.fullGradNormData = append(d.fullGradNormData, gradNorm)
}



// prints a message to the event log panel.
func (d *TrainingDashboard) Log(message string) {
	d.renderMutex.Lock()
	defer d.renderMutex.Unlock()
	d.logParagraph.Text = message
	ui.Render(d.grid)
}


// utility functions - close and loop
func (d *TrainingDashboard) Close() { ui.Close() }
func (d *TrainingDashboard) Loop() {
	uiEvents := ui.PollEvents()
	for {
		e := <-uiEvents
		if e.ID == "q" || e.ID == "<C-c>" {
			return
		}
	}
}
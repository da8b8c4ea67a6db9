package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/shouni/go-text-to-speech/pkg/speech"
)

// progressObserver はチャンクごとの進捗行を出力し、API 呼び出し中はスピナーを回します。
// スピナーは端末に書き込むだけで、パイプラインの制御には関与しません。
type progressObserver struct {
	out     io.Writer
	frames  []string
	fps     time.Duration
	mu      sync.Mutex
	stopCh  chan struct{}
	stopped chan struct{}
}

func newProgressObserver(out io.Writer) *progressObserver {
	return &progressObserver{
		out:    out,
		frames: spinner.Dot.Frames,
		fps:    spinner.Dot.FPS,
	}
}

func (p *progressObserver) ChunkStarted(ev speech.ChunkEvent) {
	p.stopSpinner()
	p.write(fmt.Sprintf("%s %d/%d %s\n", highlight.Render("chunk"), ev.Index+1, ev.Total, ev.Preview))
	p.startSpinner()
}

func (p *progressObserver) ChunkFinished(ev speech.ChunkEvent) {
	p.stopSpinner()
	p.write(fmt.Sprintf("  -> %s\n", ev.Path))
}

func (p *progressObserver) RunFailed(ev speech.ChunkEvent, err error) {
	p.stopSpinner()
	p.write(fmt.Sprintf("  !! チャンク %d/%d: %v\n", ev.Index+1, ev.Total, err))
}

func (p *progressObserver) write(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.out, s)
}

func (p *progressObserver) startSpinner() {
	stopCh := make(chan struct{})
	stopped := make(chan struct{})
	p.stopCh, p.stopped = stopCh, stopped

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(p.fps)
		defer ticker.Stop()

		for i := 0; ; i++ {
			p.write("\r" + p.frames[i%len(p.frames)])
			select {
			case <-stopCh:
				p.write("\r \r")
				return
			case <-ticker.C:
			}
		}
	}()
}

// stopSpinner はスピナーの goroutine が終了するまで待ちます。回っていなければ何もしません。
func (p *progressObserver) stopSpinner() {
	if p.stopCh == nil {
		return
	}
	close(p.stopCh)
	<-p.stopped
	p.stopCh, p.stopped = nil, nil
}

package audio

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-calltune/internal/streaming"
)

// Размер буфера потокового чтения для удаленных URI
const streamBufferSize = 256 * 1024

// Динамики инициализируются один раз на процесс
var speakerOnce sync.Once

// BeepOpener создает хэндлы на основе декодера beep
type BeepOpener struct{}

// NewBeepOpener создает новый Opener
func NewBeepOpener() *BeepOpener {
	return &BeepOpener{}
}

// Open открывает локальный файл или удаленный поток и загружает его в декодер
func (o *BeepOpener) Open(ctx context.Context, uri string, opts Options) (Handle, error) {
	var reader io.ReadCloser
	var err error

	// Определяем, является ли источник URL или локальным файлом
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		reader, err = streaming.NewReader(ctx, uri, streamBufferSize)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания потокового ридера: %w", err)
		}
	} else {
		path := strings.TrimPrefix(uri, "file://")
		reader, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия файла: %w", err)
		}
	}

	streamer, format, err := mp3.Decode(reader)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	// Инициализируем динамики (только один раз)
	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5))
	})
	if initErr != nil {
		streamer.Close()
		return nil, fmt.Errorf("ошибка инициализации динамиков: %w", initErr)
	}

	loop := &loopStreamer{s: streamer, looping: opts.Looping}
	ctrl := &beep.Ctrl{Streamer: loop, Paused: !opts.AutoPlay}

	volume := opts.Volume
	if volume == 0 {
		volume = 1.0
	}
	vol := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   math.Log2(volume),
	}

	h := &beepHandle{
		format:   format,
		streamer: streamer,
		reader:   reader,
		loop:     loop,
		ctrl:     ctrl,
	}

	speaker.Play(vol)
	return h, nil
}

// loopStreamer оборачивает декодер: зацикливание во время воспроизведения
// и фиксация естественного завершения. При завершении без зацикливания
// поток не отдается динамикам как оконченный, а переводится в тишину с
// позицией 0 - хэндл остается загруженным и готовым к повторному запуску.
type loopStreamer struct {
	s        beep.StreamSeekCloser
	looping  bool
	silent   bool // Трек доиграл и ждет повторного запуска
	finished bool // Флаг "только что завершился", сбрасывается при чтении статуса
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	if l.silent {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}

	filled := 0
	for filled < len(samples) {
		n, ok := l.s.Stream(samples[filled:])
		filled += n
		if !ok {
			if l.looping {
				// Декодер сам перезапускает трек с начала
				if err := l.s.Seek(0); err != nil {
					return filled, filled > 0
				}
				continue
			}
			l.finished = true
			l.silent = true
			_ = l.s.Seek(0)
			// Дозаполняем хвост тишиной, оставляя поток живым
			for i := filled; i < len(samples); i++ {
				samples[i] = [2]float64{}
			}
			return len(samples), true
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.s.Err()
}

// beepHandle реализует Handle поверх beep. Доступ к декодеру и
// контроллеру выполняется под блокировкой динамиков.
type beepHandle struct {
	format   beep.Format
	streamer beep.StreamSeekCloser
	reader   io.ReadCloser
	loop     *loopStreamer
	ctrl     *beep.Ctrl
	unloaded bool
}

// Status возвращает моментальное состояние хэндла
func (h *beepHandle) Status() (Status, error) {
	speaker.Lock()
	defer speaker.Unlock()

	if h.unloaded {
		return Status{}, fmt.Errorf("хэндл выгружен")
	}

	var position time.Duration
	if !h.loop.silent {
		position = h.format.SampleRate.D(h.streamer.Position())
	}

	st := Status{
		Position:     position,
		Duration:     h.format.SampleRate.D(h.streamer.Len()),
		IsPlaying:    !h.ctrl.Paused && !h.loop.silent,
		IsLooping:    h.loop.looping,
		JustFinished: h.loop.finished,
	}
	h.loop.finished = false
	return st, nil
}

// Play запускает или возобновляет воспроизведение
func (h *beepHandle) Play() error {
	speaker.Lock()
	defer speaker.Unlock()
	if h.unloaded {
		return fmt.Errorf("хэндл выгружен")
	}
	h.loop.silent = false
	h.ctrl.Paused = false
	return nil
}

// Pause приостанавливает воспроизведение, сохраняя позицию
func (h *beepHandle) Pause() error {
	speaker.Lock()
	defer speaker.Unlock()
	if h.unloaded {
		return fmt.Errorf("хэндл выгружен")
	}
	h.ctrl.Paused = true
	return nil
}

// Stop останавливает воспроизведение и сбрасывает позицию в 0
func (h *beepHandle) Stop() error {
	speaker.Lock()
	defer speaker.Unlock()
	if h.unloaded {
		return fmt.Errorf("хэндл выгружен")
	}
	if err := h.streamer.Seek(0); err != nil {
		return fmt.Errorf("ошибка сброса позиции: %w", err)
	}
	h.loop.silent = false
	h.ctrl.Paused = true
	return nil
}

// Seek перематывает на указанную позицию
func (h *beepHandle) Seek(position time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()
	if h.unloaded {
		return fmt.Errorf("хэндл выгружен")
	}
	sample := h.format.SampleRate.N(position)
	if err := h.streamer.Seek(sample); err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	h.loop.silent = false
	return nil
}

// SetLooping переключает зацикливание на активном хэндле
func (h *beepHandle) SetLooping(looping bool) error {
	speaker.Lock()
	defer speaker.Unlock()
	if h.unloaded {
		return fmt.Errorf("хэндл выгружен")
	}
	h.loop.looping = looping
	return nil
}

// Unload выгружает хэндл и освобождает декодер
func (h *beepHandle) Unload() error {
	speaker.Clear()
	speaker.Lock()
	h.unloaded = true
	speaker.Unlock()
	err := h.streamer.Close()
	_ = h.reader.Close()
	return err
}

package asset

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WAVLoader decodes WAV files from a filesystem, resampling to Rate when set.
type WAVLoader struct {
	FS   fs.FS
	Rate beep.SampleRate
}

var _ SoundLoader = WAVLoader{}

// LoadSound implements SoundLoader.
func (l WAVLoader) LoadSound(ctx context.Context, file string) (*beep.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := l.FS.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if l.Rate != 0 && format.SampleRate != l.Rate {
		src = beep.Resample(4, format.SampleRate, l.Rate, streamer)
		format.SampleRate = l.Rate
	}

	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("decode %s: no samples", file)
	}
	return buf, nil
}

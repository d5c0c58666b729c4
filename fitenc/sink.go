package fitenc

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/tormoder/fit"
)

// fileSink frames records into a real binary workout file through the FIT
// encoder dependency.
type fileSink struct {
	now   func() time.Time
	steps []*fit.WorkoutStepMsg
}

// NewFileSink returns the production sink backed by the FIT encoder.
func NewFileSink() MessageSink {
	return &fileSink{now: time.Now}
}

func (s *fileSink) Append(step *fit.WorkoutStepMsg) {
	s.steps = append(s.steps, step)
}

func (s *fileSink) Finalize(workout *fit.WorkoutMsg) ([]byte, error) {
	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeWorkout, header)
	if err != nil {
		return nil, err
	}
	file.FileId.Manufacturer = fit.ManufacturerDevelopment
	file.FileId.TimeCreated = s.now().UTC()

	wf, err := file.Workout()
	if err != nil {
		return nil, err
	}
	wf.Workout = workout
	wf.WorkoutSteps = s.steps

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

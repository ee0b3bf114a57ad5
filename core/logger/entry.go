package logger

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldSessionID = "session_id"
	fieldTimestamp = "timestamp_micros"
	fieldDir       = "dir"
	fieldLine      = "line"
	fieldTree      = "tree"
	fieldDuration  = "duration_micros"
	fieldStages    = "stages"
	fieldArgv      = "argv"
	fieldStatus    = "status"
	fieldError     = "error"
)

// CommandEvent describes one line run by the shell.
type CommandEvent struct {
	SessionID string
	Time      time.Time
	// Dir is the working directory the line started in.
	Dir      string
	Line     string
	Tree     string
	Duration time.Duration
	Stages   []StageEvent
}

// StageEvent is the outcome of one process or builtin.
type StageEvent struct {
	Argv   []string
	Status int
	Error  string
}

func (ev *CommandEvent) toStruct() (*structpb.Struct, error) {
	var stages []interface{}
	for _, st := range ev.Stages {
		var argv []interface{}
		for _, arg := range st.Argv {
			argv = append(argv, arg)
		}
		stage := map[string]interface{}{
			fieldArgv:   argv,
			fieldStatus: st.Status,
		}
		if st.Error != "" {
			stage[fieldError] = st.Error
		}
		stages = append(stages, stage)
	}

	return structpb.NewStruct(map[string]interface{}{
		fieldSessionID: ev.SessionID,
		fieldTimestamp: ev.Time.UnixNano() / int64(time.Microsecond),
		fieldDir:       ev.Dir,
		fieldLine:      ev.Line,
		fieldTree:      ev.Tree,
		fieldDuration:  ev.Duration.Microseconds(),
		fieldStages:    stages,
	})
}

// DecodeCommandEvent converts a logged entry back to an event.
func DecodeCommandEvent(le *structpb.Struct) (*CommandEvent, error) {
	fields := le.GetFields()
	if _, ok := fields[fieldLine]; !ok {
		return nil, fmt.Errorf("not a command event: missing %q", fieldLine)
	}

	ev := &CommandEvent{
		SessionID: fields[fieldSessionID].GetStringValue(),
		Time:      time.UnixMicro(int64(fields[fieldTimestamp].GetNumberValue())),
		Dir:       fields[fieldDir].GetStringValue(),
		Line:      fields[fieldLine].GetStringValue(),
		Tree:      fields[fieldTree].GetStringValue(),
		Duration:  time.Duration(fields[fieldDuration].GetNumberValue()) * time.Microsecond,
	}

	for _, v := range fields[fieldStages].GetListValue().GetValues() {
		stageFields := v.GetStructValue().GetFields()
		var st StageEvent
		for _, arg := range stageFields[fieldArgv].GetListValue().GetValues() {
			st.Argv = append(st.Argv, arg.GetStringValue())
		}
		st.Status = int(stageFields[fieldStatus].GetNumberValue())
		st.Error = stageFields[fieldError].GetStringValue()
		ev.Stages = append(ev.Stages, st)
	}

	return ev, nil
}

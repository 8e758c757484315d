package workload

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/viant/parsly"

	"github.com/viant/procman/model"
)

// ErrSyntax is returned for a malformed workload line
var ErrSyntax = errors.New("workload: syntax error")

// Parse parses workload lines: arrival name service memory
func Parse(input []byte) ([]*model.Process, error) {
	var ret []*model.Process
	for i, line := range bytes.Split(input, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		process, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %v: %v", ErrSyntax, i+1, err)
		}
		ret = append(ret, process)
	}
	return ret, nil
}

func parseLine(line []byte) (*model.Process, error) {
	cursor := parsly.NewCursor("", line, 0)
	process := &model.Process{}
	var err error

	if process.Arrival, err = matchInt(cursor, "arrival"); err != nil {
		return nil, err
	}
	matched := cursor.MatchAfterOptional(whitespaceToken, nameToken)
	if matched.Code != nameToken.Code {
		return nil, cursor.NewError(nameToken)
	}
	process.Name = matched.Text(cursor)
	if process.Service, err = matchInt(cursor, "service"); err != nil {
		return nil, err
	}
	if process.Memory, err = matchInt(cursor, "memory"); err != nil {
		return nil, err
	}

	cursor.MatchOne(whitespaceToken)
	if cursor.Pos < cursor.InputSize {
		return nil, fmt.Errorf("unexpected trailing input %q", line[cursor.Pos:])
	}
	return process, nil
}

func matchInt(cursor *parsly.Cursor, field string) (int, error) {
	matched := cursor.MatchAfterOptional(whitespaceToken, integerToken)
	if matched.Code != integerToken.Code {
		return 0, fmt.Errorf("%v: %w", field, cursor.NewError(integerToken))
	}
	value, err := strconv.Atoi(matched.Text(cursor))
	if err != nil {
		return 0, fmt.Errorf("%v: %w", field, err)
	}
	return value, nil
}

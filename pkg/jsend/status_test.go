package jsend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{raw: "success", want: StatusSuccess},
		{raw: "fail", want: StatusFail},
		{raw: " ERROR ", want: StatusError},
		{raw: "", wantErr: true},
		{raw: "ok", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownStatus))
				assert.Equal(t, StatusUnset, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "", StatusUnset.String())
	assert.Equal(t, "", Status(200).String())
	assert.False(t, StatusUnset.Valid())
	assert.False(t, Status(4).Valid())
}

func TestRequiredFields(t *testing.T) {
	assert.Equal(t, []Field{FieldStatus, FieldData}, RequiredFields(StatusSuccess))
	assert.Equal(t, []Field{FieldStatus, FieldMessage}, RequiredFields(StatusFail))
	assert.Equal(t, []Field{FieldStatus, FieldMessage}, RequiredFields(StatusError))
	assert.Nil(t, RequiredFields(StatusUnset))
	assert.Nil(t, RequiredFields(Status(9)))
}

func TestField_Title(t *testing.T) {
	assert.Equal(t, "Status", FieldStatus.Title())
	assert.Equal(t, "Message", FieldMessage.Title())
	assert.Equal(t, "Data", FieldData.Title())
	assert.Equal(t, "Code", FieldCode.Title())
	assert.Equal(t, "code", FieldCode.String())
}

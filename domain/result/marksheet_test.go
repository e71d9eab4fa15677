package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func recordOf(headers []string, values ...CellValue) RowRecord {
	fields := make([]Field, len(headers))
	for i, h := range headers {
		fields[i] = Field{Header: h, Value: values[i]}
	}
	return NewRowRecord(fields)
}

func TestBuildMarksheetExample(t *testing.T) {
	headers := []string{"RegNo", "Name", "Maths", "Science"}
	record := recordOf(headers, TextCell("R1"), TextCell("Asha"), NumberCell(80), NumberCell(70))

	m := BuildMarksheet(record, ClassifyColumns(headers), "10", DefaultScoringPolicy())

	assert.Equal(t, "Asha", m.Name)
	assert.Equal(t, "10", m.Class)
	assert.Equal(t, "R1", m.RegistrationNo)
	assert.Equal(t, []SubjectScore{
		{Subject: "Maths", MaxMarks: 100, Obtained: 80},
		{Subject: "Science", MaxMarks: 100, Obtained: 70},
	}, m.Subjects)
	assert.Equal(t, 150.0, m.TotalObtained)
	assert.Equal(t, 200.0, m.TotalMax)
	assert.Equal(t, "150/200", m.TotalText())
	assert.Equal(t, "75.00", m.PercentageText())
	assert.Equal(t, StatusPass, m.Status)
}

func TestBuildMarksheetNoNumericSubjects(t *testing.T) {
	headers := []string{"RegNo", "Name", "Remarks", "Father Name"}
	record := recordOf(headers, TextCell("R9"), TextCell("Meena"), TextCell("Absent"), TextCell("Raj"))

	m := BuildMarksheet(record, ClassifyColumns(headers), "12", DefaultScoringPolicy())

	assert.Empty(t, m.Subjects)
	assert.Equal(t, 0.0, m.TotalMax)
	assert.Equal(t, "0.00", m.PercentageText())
	assert.Equal(t, "0/"+TotalPlaceholder, m.TotalText())
	assert.Equal(t, StatusFail, m.Status)
}

func TestBuildMarksheetPassBoundary(t *testing.T) {
	tests := []struct {
		name     string
		obtained CellValue
		want     Status
		pct      string
	}{
		{"exactly 33", NumberCell(33), StatusPass, "33.00"},
		{"just below", NumberCell(32.99), StatusFail, "32.99"},
		{"rounds up to 33", NumberCell(32.996), StatusPass, "33.00"},
		{"text score", TextCell("33"), StatusPass, "33.00"},
	}

	headers := []string{"RegNo", "Maths"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := recordOf(headers, TextCell("R1"), tt.obtained)
			m := BuildMarksheet(record, ClassifyColumns(headers), "10", DefaultScoringPolicy())
			assert.Equal(t, tt.want, m.Status)
			assert.Equal(t, tt.pct, m.PercentageText())
		})
	}
}

func TestBuildMarksheetSkipsNonNumericAndInfo(t *testing.T) {
	headers := []string{"Reg No", "Student Name", "Class", "Section", "English", "Grade", "Hindi", "Mother Name"}
	record := recordOf(headers,
		TextCell("A102"), TextCell("Kiran"), TextCell("10-B"), NumberCell(2),
		TextCell("91"), TextCell("A+"), NumberCell(88.5), TextCell("Sita"))

	m := BuildMarksheet(record, ClassifyColumns(headers), "10", DefaultScoringPolicy())

	assert.Equal(t, "10-B", m.Class)
	assert.Equal(t, []SubjectScore{
		{Subject: "English", MaxMarks: 100, Obtained: 91},
		{Subject: "Hindi", MaxMarks: 100, Obtained: 88.5},
	}, m.Subjects)
	assert.Equal(t, "179.5/200", m.TotalText())
	assert.Equal(t, "89.75", m.PercentageText())
}

func TestBuildMarksheetIgnoresBooleanColumns(t *testing.T) {
	headers := []string{"RegNo", "Name", "Maths", "Practical Done"}
	record := recordOf(headers, TextCell("R1"), TextCell("Asha"), NumberCell(80), BoolCell(true))

	m := BuildMarksheet(record, ClassifyColumns(headers), "10", DefaultScoringPolicy())

	assert.Equal(t, []SubjectScore{{Subject: "Maths", MaxMarks: 100, Obtained: 80}}, m.Subjects)
	assert.Equal(t, "80/100", m.TotalText())
	assert.Equal(t, "80.00", m.PercentageText())
}

func TestBuildMarksheetFallbacks(t *testing.T) {
	headers := []string{"RegNo", "Class", "Maths"}
	record := recordOf(headers, TextCell("R1"), TextCell("  "), NumberCell(50))

	m := BuildMarksheet(record, ClassifyColumns(headers), "12", DefaultScoringPolicy())

	assert.Equal(t, "", m.Name)
	assert.Equal(t, "12", m.Class)
}

func TestBuildMarksheetMaxColumnSuffix(t *testing.T) {
	headers := []string{"RegNo", "Maths", "Maths_Max", "Art", "Art_Max"}
	record := recordOf(headers, TextCell("R1"), NumberCell(40), NumberCell(50), NumberCell(20), TextCell(""))

	policy := DefaultScoringPolicy()
	withSuffix := policy
	withSuffix.MaxColumnSuffix = "_Max"

	m := BuildMarksheet(record, ClassifyColumns(headers), "10", withSuffix)
	assert.Equal(t, []SubjectScore{
		{Subject: "Maths", MaxMarks: 50, Obtained: 40},
		{Subject: "Art", MaxMarks: 100, Obtained: 20},
	}, m.Subjects)
	assert.Equal(t, "60/150", m.TotalText())
	assert.Equal(t, "40.00", m.PercentageText())

	plain := BuildMarksheet(record, ClassifyColumns(headers), "10", policy)
	assert.Len(t, plain.Subjects, 3)
	assert.Equal(t, 300.0, plain.TotalMax)
}

func TestRoundPercentage(t *testing.T) {
	assert.Equal(t, 0.0, RoundPercentage(10, 0))
	assert.Equal(t, 66.67, RoundPercentage(200, 300))
	assert.Equal(t, 33.0, RoundPercentage(99, 300))
}

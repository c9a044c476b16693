package fill

import "testing"

func TestAlreadyFilledEIN(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"12-3456789", true},
		{"123456789", true},
		{"EIN: 12-3456789", true},
		{"12-345678", false}, // seven-digit tail missing a digit
		{"12-34567890", false},
		{"", false},
		{"pending", false},
	}

	for _, tt := range tests {
		if got := AlreadyFilled(FieldEIN, tt.content); got != tt.want {
			t.Errorf("AlreadyFilled(ein, %q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestAlreadyFilledPhone(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"(555) 123-4567", true},
		{"555-123-4567", true},
		{"555.123.4567", true},
		{"555 123 4567", true},
		{"5551234567", true},
		{"+1 (555) 123-4567", true},
		{"( ) -", false}, // pre-printed scaffolding, no digits
		{"(   )    -", false},
		{"", false},
		{"ext.", false},
		{"5551234", true}, // seven digits is plausibly a local number
	}

	for _, tt := range tests {
		if got := AlreadyFilled(FieldPhone, tt.content); got != tt.want {
			t.Errorf("AlreadyFilled(phone, %q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestAlreadyFilledDOB(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"01/15/1990", true},
		{"1-15-90", true},
		{"1990/01/15", false}, // year-first is not a recognized birth date
		{"", false},
	}

	for _, tt := range tests {
		if got := AlreadyFilled(FieldDOB, tt.content); got != tt.want {
			t.Errorf("AlreadyFilled(dob, %q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestAlreadyFilledSSN(t *testing.T) {
	if !AlreadyFilled(FieldSSN, "123-45-6789") {
		t.Error("Expected dashed SSN to count as filled")
	}
	if !AlreadyFilled(FieldSSN, "123456789") {
		t.Error("Expected bare nine digits to count as filled")
	}
	if AlreadyFilled(FieldSSN, "12-34") {
		t.Error("Expected partial digits to not count as filled")
	}
}

func TestAlreadyFilledNameAndAddress(t *testing.T) {
	if !AlreadyFilled(FieldName, "Jane Doe") {
		t.Error("Expected alphabetic content to count as a filled name")
	}
	if AlreadyFilled(FieldName, "") {
		t.Error("Expected empty content to count as blank")
	}
	if !AlreadyFilled(FieldAddress, "123 Main Street, Springfield") {
		t.Error("Expected a street line to count as a filled address")
	}
	if AlreadyFilled(FieldAddress, "123") {
		t.Error("Expected short content to not count as a filled address")
	}
}

func TestAlreadyFilledEmail(t *testing.T) {
	if !AlreadyFilled(FieldEmail, "jane@example.com") {
		t.Error("Expected an address to count as filled")
	}
	if AlreadyFilled(FieldEmail, "name@") {
		t.Error("Expected a partial address to not count as filled")
	}
}

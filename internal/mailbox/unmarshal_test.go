package mailbox

import (
	"reflect"
	"testing"
)

const alertTable = `<html><body>
<p>Your daily job alerts:</p>
<table>
  <tr><th>Company</th><th>Role</th></tr>
  <tr><td>Acme</td><td><a href="https://a.example/job">Engineer</a></td></tr>
  <tr><td>Beta</td><td><a href="https://b.example/job">Designer</a></td></tr>
</table>
</body></html>`

func TestParseJobs_HeaderSkippedOrderPreserved(t *testing.T) {
	got, err := ParseJobs(alertTable)
	if err != nil {
		t.Fatalf("ParseJobs() error = %v", err)
	}

	want := []JobTuple{
		{CompanyName: "Acme", JobTitle: "Engineer", ApplyLink: "https://a.example/job"},
		{CompanyName: "Beta", JobTitle: "Designer", ApplyLink: "https://b.example/job"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseJobs() = %+v, want %+v", got, want)
	}
}

func TestParseJobs_Restartable(t *testing.T) {
	first, err := ParseJobs(alertTable)
	if err != nil {
		t.Fatalf("ParseJobs() error = %v", err)
	}
	second, err := ParseJobs(alertTable)
	if err != nil {
		t.Fatalf("ParseJobs() second error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-parse differs: %+v vs %+v", first, second)
	}
}

func TestParseJobs_IncompleteRowsExcluded(t *testing.T) {
	body := `<table>
	  <tr><th>Company</th><th>Role</th></tr>
	  <tr><td>Acme</td><td><a href="https://a.example/job">Engineer</a></td></tr>
	  <tr><td></td><td><a href="https://x.example/job">No Company</a></td></tr>
	  <tr><td>NoLink</td><td>Just text</td></tr>
	  <tr><td>OneCell</td></tr>
	  <tr><td>Gamma</td><td><a href="https://g.example/job">Analyst</a></td></tr>
	</table>`

	got, err := ParseJobs(body)
	if err != nil {
		t.Fatalf("ParseJobs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 valid rows: %+v", len(got), got)
	}
	if got[0].CompanyName != "Acme" || got[1].CompanyName != "Gamma" {
		t.Errorf("row order not preserved: %+v", got)
	}
}

func TestParseJobs_OnlyFirstTable(t *testing.T) {
	body := `
	<table>
	  <tr><th>Company</th><th>Role</th></tr>
	  <tr><td>Acme</td><td><a href="https://a.example/job">Engineer</a></td></tr>
	</table>
	<table>
	  <tr><th>x</th><th>y</th></tr>
	  <tr><td>Other</td><td><a href="https://o.example">Ignored</a></td></tr>
	</table>`

	got, err := ParseJobs(body)
	if err != nil {
		t.Fatalf("ParseJobs() error = %v", err)
	}
	if len(got) != 1 || got[0].CompanyName != "Acme" {
		t.Errorf("ParseJobs() = %+v, want only the first table's rows", got)
	}
}

func TestParseJobs_NoTable(t *testing.T) {
	got, err := ParseJobs("<p>no postings today</p>")
	if err != nil {
		t.Fatalf("ParseJobs() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ParseJobs() = %+v, want none", got)
	}
}

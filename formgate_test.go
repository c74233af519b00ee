package formgate

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/validator"
)

const signup = `<html><body>
<div class="w-form"><form id="signup">
  <div class="form-field-wrapper">
    <input id="email" type="email" value="ada@example.com">
    <div class="form-field-error" style="display:none">Bad email</div>
  </div>
  <div class="form-field-wrapper">
    <input id="nick" data-validate-length="3" value="Ada">
    <div class="form-field-error" style="display:none">Too short</div>
  </div>
  <input type="submit" value="Join">
</form></div>
</body></html>`

func TestValidateHTML(t *testing.T) {
	reports, err := ValidateHTML(context.Background(), signup)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(reports) != 1 || !reports[0].Valid {
		t.Fatalf("expected one valid report, got %+v", reports)
	}

	reports, err = ValidateHTML(context.Background(), signup,
		validator.WithPolicy(rules.Policy{LengthComparison: rules.Exclusive}))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if reports[0].Valid || reports[0].FirstError != "nick" || !reports[0].Forced {
		t.Fatalf("expected forced nick error, got %+v", reports[0])
	}
}

func TestValidateHTML_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ValidateHTML(ctx, signup); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestAttachHTML(t *testing.T) {
	doc, forms, err := AttachHTML(strings.NewReader(signup))
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if len(forms) != 1 || len(forms[0].Fields) != 2 {
		t.Fatalf("unexpected forms %+v", forms)
	}
	doc.Type(doc.Query("#nick"), "A")
	if !doc.Query("#nick").HasClass("is-error") {
		t.Fatalf("expected error class after typing a short nick")
	}
}

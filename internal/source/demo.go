package source

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inspectgrid/internal/model"
)

var (
	demoSites      = []string{"תל אביב", "חיפה", "ירושלים", "באר שבע", "אילת", "נתניה", "אשדוד", "רמת גן"}
	demoBuildings  = []string{"מגדל צפון", "מגדל דרום", "בניין מגורים", "מרכז מסחרי", "חניון תת קרקעי", "אולם ספורט", "בית ספר", "מחסן לוגיסטי"}
	demoInspectors = []string{"דנה כהן", "יוסי לוי", "מיכל אברהם", "אבי מזרחי", "נועה פרץ", "עומר ביטון"}
	demoStatuses   = []string{"ממתין", "בביצוע", "הושלם", "נדחה"}
	demoNotes      = []string{
		"סדק בקיר החיצוני",
		"נדרשת בדיקה חוזרת של מערכת הכיבוי",
		"מעקה חסר בקומה השלישית",
		"",
		"ליקויי איטום בגג, יש לתאם בדיקה עם הקבלן לאחר תיקון הנזילות ולוודא שהמרזבים פנויים לפני עונת הגשמים הקרובה",
	}
)

// DemoColumns describes the demo inspection records.
func DemoColumns() []model.Column {
	return []model.Column{
		{ID: "id", Label: "מזהה", Type: model.TypeString},
		{ID: "site", Label: "אתר", Type: model.TypeString, Editable: true},
		{ID: "building", Label: "מבנה", Type: model.TypeString, Editable: true},
		{ID: "inspector", Label: "מפקח", Type: model.TypeString, Editable: true},
		{ID: "status", Label: "סטטוס", Type: model.TypeString, Editable: true},
		{ID: "floors", Label: "קומות", Type: model.TypeNumber, Editable: true},
		{ID: "priority", Label: "עדיפות", Type: model.TypeNumber, Editable: true},
		{ID: "passed", Label: "עבר", Type: model.TypeBoolean, Editable: true},
		{ID: "due", Label: "תאריך יעד", Type: model.TypeDate, Editable: true},
		{ID: "contact", Label: "דוא\"ל", Type: model.TypeEmail, Editable: true},
		{ID: "report", Label: "דוח", Type: model.TypeURL},
		{ID: "notes", Label: "הערות", Type: model.TypeString, Editable: true},
	}
}

// DemoRow builds the i-th synthetic inspection record.
func DemoRow(rng *rand.Rand, i int) model.Row {
	id := fmt.Sprintf("INS-%05d", i)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inspector := demoInspectors[rng.Intn(len(demoInspectors))]
	fields := map[string]model.Value{
		"id":        model.String(id),
		"site":      model.String(demoSites[rng.Intn(len(demoSites))]),
		"building":  model.String(demoBuildings[rng.Intn(len(demoBuildings))]),
		"inspector": model.String(inspector),
		"status":    model.String(demoStatuses[rng.Intn(len(demoStatuses))]),
		"floors":    model.Number(float64(1 + rng.Intn(40))),
		"priority":  model.Number(float64(1 + rng.Intn(5))),
		"passed":    model.Bool(rng.Intn(3) > 0),
		"due":       model.Date(base.AddDate(0, 0, rng.Intn(365))),
		"contact":   model.String(fmt.Sprintf("inspector%d@example.co.il", 1+rng.Intn(len(demoInspectors)))),
		"report":    model.String("https://reports.example.co.il/" + strings.ToLower(id)),
	}
	if n := demoNotes[rng.Intn(len(demoNotes))]; n != "" {
		fields["notes"] = model.String(n)
	}
	return model.Row{ID: id, Fields: fields}
}

// Demo returns n deterministic inspection records.
func Demo(n int) Dataset {
	rng := rand.New(rand.NewSource(7))
	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = DemoRow(rng, i+1)
	}
	return Dataset{Columns: DemoColumns(), Rows: rows}
}

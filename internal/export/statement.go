package export

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/gemachapp/ledger-service/internal/models"
)

// Statement is the input to the XML export: one client, their ordered ledger,
// and the current account balance.
type Statement struct {
	Client       models.Client
	Transactions []models.Transaction
	Balance      decimal.Decimal
	GeneratedAt  time.Time
}

// BuildXML renders the statement as an XML document:
//
//	<statement>
//	  <client .../>
//	  <transactions>
//	    <transaction id=... running_balance=.../>
//	  </transactions>
//	  <balance>...</balance>
//	</statement>
func BuildXML(st Statement) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("statement")
	root.CreateAttr("generated_at", st.GeneratedAt.UTC().Format(time.RFC3339))

	client := root.CreateElement("client")
	client.CreateAttr("id", formatInt(st.Client.ID))
	client.CreateElement("name").SetText(st.Client.FullName())
	client.CreateElement("phone").SetText(st.Client.Phone)
	if st.Client.Email != "" {
		client.CreateElement("email").SetText(st.Client.Email)
	}

	transactions := root.CreateElement("transactions")
	running := decimal.Zero
	for _, t := range st.Transactions {
		running = running.Add(t.Impact())

		e := transactions.CreateElement("transaction")
		e.CreateAttr("id", formatInt(t.ID))
		e.CreateAttr("date", t.TransDate.UTC().Format(time.RFC3339))
		e.CreateAttr("agent", t.Agent)
		if t.Added.Valid {
			e.CreateElement("added").SetText(t.Added.Decimal.StringFixed(2))
		}
		if t.Subtracted.Valid {
			e.CreateElement("subtracted").SetText(t.Subtracted.Decimal.StringFixed(2))
		}
		e.CreateElement("running_balance").SetText(running.StringFixed(2))
	}

	root.CreateElement("balance").SetText(st.Balance.StringFixed(2))

	doc.Indent(2)
	return doc.WriteToBytes()
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

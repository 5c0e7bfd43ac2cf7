// ABOUTME: Stakeholder, document, personnel, lead and issue CLI commands
// ABOUTME: Document and lead listings honor the --as stakeholder's permissions
package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

func (a *App) stakeholderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stakeholder",
		Short: "Manage stakeholders and their permissions",
	}

	var name, company, email, phone, shType string
	add := &cobra.Command{
		Use:   "add <activation-id>",
		Short: "Add a stakeholder with the default permissions for their type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			sh, err := a.svc.AddStakeholder(cmd.Context(), models.Stakeholder{
				ActivationID: activationID,
				Name:         name,
				Company:      company,
				Email:        email,
				Phone:        phone,
				Type:         models.StakeholderType(shType),
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, sh, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Added stakeholder: %s (%s, ID: %s)\n", sh.Name, sh.Type, sh.ID)
				return err
			})
		},
	}
	f := add.Flags()
	f.StringVar(&name, "name", "", "Name (required)")
	f.StringVar(&company, "company", "", "Company")
	f.StringVar(&email, "email", "", "Email")
	f.StringVar(&phone, "phone", "", "Phone")
	f.StringVar(&shType, "type", string(models.StakeholderOther), "Type: brand, venue, distributor, marketing_agency, vendor, personnel or other")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "List stakeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			stakeholders, err := a.svc.ListStakeholders(cmd.Context(), activationID)
			if err != nil {
				return err
			}
			return a.emit(cmd, stakeholders, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tNAME\tTYPE\tNDA\tBUDGET\tLEADS\tALL DOCS")
				for _, sh := range stakeholders {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%t\t%t\n",
						sh.ID, sh.Name, sh.Type, sh.NDAStatus, sh.CanViewBudget, sh.CanViewLeads, sh.CanViewAllDocuments)
				}
				return tw.Flush()
			})
		},
	}

	var perms models.Permissions
	permissions := &cobra.Command{
		Use:   "permissions <stakeholder-id>",
		Short: "Replace a stakeholder's permission flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("stakeholder", args[0])
			if err != nil {
				return err
			}
			sh, err := a.svc.UpdateStakeholderPermissions(cmd.Context(), id, perms)
			if err != nil {
				return err
			}
			return a.emit(cmd, sh, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: budget=%t leads=%t all-documents=%t\n",
					sh.Name, sh.CanViewBudget, sh.CanViewLeads, sh.CanViewAllDocuments)
				return err
			})
		},
	}
	pf := permissions.Flags()
	pf.BoolVar(&perms.CanViewBudget, "budget", false, "May view the budget")
	pf.BoolVar(&perms.CanViewLeads, "leads", false, "May view captured leads")
	pf.BoolVar(&perms.CanViewAllDocuments, "all-documents", false, "May view unscoped documents")

	nda := &cobra.Command{
		Use:   "nda <stakeholder-id> <not_required|pending|signed>",
		Short: "Set a stakeholder's NDA status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("stakeholder", args[0])
			if err != nil {
				return err
			}
			sh, err := a.svc.SetNDAStatus(cmd.Context(), id, models.NDAStatus(args[1]))
			if err != nil {
				return err
			}
			return a.emit(cmd, sh, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: NDA %s\n", sh.Name, sh.NDAStatus)
				return err
			})
		},
	}

	cmd.AddCommand(add, list, permissions, nda)
	return cmd
}

// viewerFor resolves --as into a viewer. No stakeholder means the operator.
func (a *App) viewerFor(cmd *cobra.Command, activationID string, as string) (models.Viewer, error) {
	id, err := parseID("activation", activationID)
	if err != nil {
		return models.Viewer{}, err
	}
	stakeholderID, err := parseOptionalID("stakeholder", as)
	if err != nil {
		return models.Viewer{}, err
	}
	return a.svc.ResolveViewer(cmd.Context(), id, stakeholderID, stakeholderID == nil)
}

func (a *App) documentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "document",
		Aliases: []string{"doc"},
		Short:   "Manage documents and e-signatures",
	}

	var title, docType, content, fileURL, scope string
	var requireSignature bool
	add := &cobra.Command{
		Use:   "add <activation-id>",
		Short: "Add a document, optionally scoped to one stakeholder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			scopeID, err := parseOptionalID("stakeholder", scope)
			if err != nil {
				return err
			}
			signStatus := models.SignNotRequired
			if requireSignature {
				signStatus = models.SignPendingSignature
			}
			doc, err := a.svc.AddDocument(cmd.Context(), models.Document{
				ActivationID:          activationID,
				Title:                 title,
				Type:                  models.DocumentType(docType),
				Content:               content,
				FileURL:               fileURL,
				ScopedToStakeholderID: scopeID,
				SignStatus:            signStatus,
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, doc, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Added document: %s (ID: %s)\n", doc.Title, doc.ID)
				return err
			})
		},
	}
	f := add.Flags()
	f.StringVar(&title, "title", "", "Title (required)")
	f.StringVar(&docType, "type", string(models.DocumentOther), "Type: contract, nda, brief, permit, insurance or other")
	f.StringVar(&content, "content", "", "Inline content")
	f.StringVar(&fileURL, "url", "", "File URL")
	f.StringVar(&scope, "stakeholder", "", "Scope the document to this stakeholder ID")
	f.BoolVar(&requireSignature, "require-signature", false, "Document needs an e-signature")
	_ = add.MarkFlagRequired("title")

	var as string
	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "List documents visible to the operator or to --as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := a.viewerFor(cmd, args[0], as)
			if err != nil {
				return err
			}
			activationID, _ := parseID("activation", args[0])
			docs, err := a.svc.DocumentsFor(cmd.Context(), activationID, viewer)
			if err != nil {
				return err
			}
			return a.emit(cmd, docs, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tSIGNATURE\tSCOPE")
				for _, d := range docs {
					scope := "all"
					if d.ScopedToStakeholderID != nil {
						scope = d.ScopedToStakeholderID.String()
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Title, d.Type, d.SignStatus, scope)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVar(&as, "as", "", "View as this stakeholder ID")

	var signerName, signerEmail string
	request := &cobra.Command{
		Use:   "request-signature <document-id>",
		Short: "Mark a document as awaiting signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("document", args[0])
			if err != nil {
				return err
			}
			doc, err := a.svc.RequestSignature(cmd.Context(), id, signerName, signerEmail)
			if err != nil {
				return err
			}
			return a.printDocument(cmd, doc)
		},
	}
	request.Flags().StringVar(&signerName, "name", "", "Expected signer name")
	request.Flags().StringVar(&signerEmail, "email", "", "Expected signer email")

	var sig activation.SignatureRequest
	sign := &cobra.Command{
		Use:   "sign <document-id>",
		Short: "Sign a document; requires --consent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("document", args[0])
			if err != nil {
				return err
			}
			sig.Viewer = models.AdminViewer
			doc, err := a.svc.SignDocument(cmd.Context(), id, sig)
			if err != nil {
				return err
			}
			return a.printDocument(cmd, doc)
		},
	}
	sf := sign.Flags()
	sf.StringVar(&sig.SignerName, "name", "", "Signer name (required)")
	sf.StringVar(&sig.SignerEmail, "email", "", "Signer email (required)")
	sf.StringVar(&sig.SignatureData, "signature", "", "Signature image as a data:image/... URL (required)")
	sf.BoolVar(&sig.Consent, "consent", false, "Signer consents to sign electronically")

	cmd.AddCommand(add, list, request, sign)
	return cmd
}

func (a *App) printDocument(cmd *cobra.Command, doc *models.Document) error {
	return a.emit(cmd, doc, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s: %s\n", doc.Title, doc.SignStatus)
		return err
	})
}

func (a *App) personnelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "personnel",
		Aliases: []string{"staff"},
		Short:   "Manage event staff and their time clock",
	}

	var name, role, email, phone, rate string
	add := &cobra.Command{
		Use:   "add <activation-id>",
		Short: "Add a staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			cents, err := parseMoney("rate", rate)
			if err != nil {
				return err
			}
			p, err := a.svc.AddPersonnel(cmd.Context(), models.Personnel{
				ActivationID: activationID,
				Name:         name,
				Role:         role,
				Email:        email,
				Phone:        phone,
				HourlyRate:   cents,
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Added staff: %s (ID: %s)\n", p.Name, p.ID)
				return err
			})
		},
	}
	f := add.Flags()
	f.StringVar(&name, "name", "", "Name (required)")
	f.StringVar(&role, "role", "", "Role, e.g. brand ambassador")
	f.StringVar(&email, "email", "", "Email")
	f.StringVar(&phone, "phone", "", "Phone")
	f.StringVar(&rate, "rate", "", "Hourly rate in dollars")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "List staff and clock status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			staff, err := a.svc.ListPersonnel(cmd.Context(), activationID)
			if err != nil {
				return err
			}
			return a.emit(cmd, staff, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tNAME\tROLE\tCLOCK\tHOURS\tVERIFIED")
				for _, p := range staff {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%t\n",
						p.ID, p.Name, p.Role, p.ClockStatus, p.TotalHoursWorked, p.ProductKnowledgeVerified)
				}
				return tw.Flush()
			})
		},
	}

	clock := &cobra.Command{
		Use:   "clock <personnel-id> <clock_in|start_break|end_break|clock_out>",
		Short: "Apply a time clock action",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("personnel", args[0])
			if err != nil {
				return err
			}
			p, err := a.svc.ClockPersonnel(cmd.Context(), id, models.ClockAction(args[1]))
			if err != nil {
				return err
			}
			return a.emit(cmd, p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: %s\n", p.Name, p.ClockStatus)
				return err
			})
		},
	}

	verify := &cobra.Command{
		Use:   "verify <personnel-id> <score>",
		Short: "Record a product knowledge quiz score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("personnel", args[0])
			if err != nil {
				return err
			}
			score, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid score %q: %w", args[1], err)
			}
			p, err := a.svc.VerifyProductKnowledge(cmd.Context(), id, score)
			if err != nil {
				return err
			}
			return a.emit(cmd, p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: score %d, verified %t\n", p.Name, p.ProductKnowledgeScore, p.ProductKnowledgeVerified)
				return err
			})
		},
	}

	cmd.AddCommand(add, list, clock, verify)
	return cmd
}

func (a *App) leadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Capture and list leads",
	}

	var (
		lead       models.Lead
		capturedBy string
	)
	capture := &cobra.Command{
		Use:   "capture <activation-id>",
		Short: "Capture a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			lead.ActivationID = activationID
			if lead.CapturedBy, err = parseOptionalID("personnel", capturedBy); err != nil {
				return err
			}
			created, err := a.svc.CaptureLead(cmd.Context(), lead)
			if err != nil {
				return err
			}
			return a.emit(cmd, created, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Captured lead: %s (ID: %s)\n", created.Name, created.ID)
				return err
			})
		},
	}
	f := capture.Flags()
	f.StringVar(&lead.Name, "name", "", "Name (required)")
	f.StringVar(&lead.Email, "email", "", "Email")
	f.StringVar(&lead.Phone, "phone", "", "Phone")
	f.StringVar(&lead.ZipCode, "zip", "", "Zip code")
	f.BoolVar(&lead.SampleGiven, "sample", false, "A sample was handed out")
	f.BoolVar(&lead.OptIn, "opt-in", false, "Lead opted in to marketing")
	f.StringVar(&capturedBy, "captured-by", "", "Staff member ID")
	f.StringVar(&lead.Notes, "notes", "", "Notes")
	_ = capture.MarkFlagRequired("name")

	var as string
	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "List leads visible to the operator or to --as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := a.viewerFor(cmd, args[0], as)
			if err != nil {
				return err
			}
			activationID, _ := parseID("activation", args[0])
			leads, err := a.svc.LeadsFor(cmd.Context(), activationID, viewer)
			if err != nil {
				return err
			}
			return a.emit(cmd, leads, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "NAME\tEMAIL\tZIP\tSAMPLE\tOPT-IN")
				for _, l := range leads {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", l.Name, l.Email, l.ZipCode, l.SampleGiven, l.OptIn)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVar(&as, "as", "", "View as this stakeholder ID")

	cmd.AddCommand(capture, list)
	return cmd
}

func (a *App) issueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Report and resolve on-site issues",
	}

	var issue models.Issue
	var severity string
	report := &cobra.Command{
		Use:   "report <activation-id>",
		Short: "Report an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			issue.ActivationID = activationID
			issue.Severity = models.IssueSeverity(severity)
			created, err := a.svc.ReportIssue(cmd.Context(), issue)
			if err != nil {
				return err
			}
			return a.emit(cmd, created, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Reported issue: %s [%s] (ID: %s)\n", created.Title, created.Severity, created.ID)
				return err
			})
		},
	}
	f := report.Flags()
	f.StringVar(&issue.Title, "title", "", "Title (required)")
	f.StringVar(&issue.Description, "description", "", "Description")
	f.StringVar(&severity, "severity", string(models.SeverityMedium), "Severity: low, medium, high or critical")
	f.StringVar(&issue.ReportedBy, "by", "", "Reporter")
	_ = report.MarkFlagRequired("title")

	list := &cobra.Command{
		Use:   "list <activation-id>",
		Short: "List issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activationID, err := parseID("activation", args[0])
			if err != nil {
				return err
			}
			issues, err := a.svc.ListIssues(cmd.Context(), activationID)
			if err != nil {
				return err
			}
			return a.emit(cmd, issues, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tTITLE\tSEVERITY\tSTATUS")
				for _, i := range issues {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", i.ID, i.Title, i.Severity, i.Status)
				}
				return tw.Flush()
			})
		},
	}

	escalate := &cobra.Command{
		Use:   "escalate <issue-id>",
		Short: "Escalate an open issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("issue", args[0])
			if err != nil {
				return err
			}
			i, err := a.svc.EscalateIssue(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printIssue(cmd, i)
		},
	}

	var resolution string
	resolve := &cobra.Command{
		Use:   "resolve <issue-id>",
		Short: "Resolve an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("issue", args[0])
			if err != nil {
				return err
			}
			i, err := a.svc.ResolveIssue(cmd.Context(), id, resolution)
			if err != nil {
				return err
			}
			return a.printIssue(cmd, i)
		},
	}
	resolve.Flags().StringVar(&resolution, "resolution", "", "How it was resolved")

	cmd.AddCommand(report, list, escalate, resolve)
	return cmd
}

func (a *App) printIssue(cmd *cobra.Command, i *models.Issue) error {
	return a.emit(cmd, i, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s: %s\n", i.Title, i.Status)
		return err
	})
}

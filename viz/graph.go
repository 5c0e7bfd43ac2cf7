// ABOUTME: GraphViz rendering of an activation's pipelines
// ABOUTME: Venue, budget and product records become status-colored nodes around the activation
package viz

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

// Graph types accepted by Generate.
const (
	GraphPipeline     = "pipeline"
	GraphStakeholders = "stakeholders"
)

type GraphGenerator struct {
	svc *activation.Service
}

func NewGraphGenerator(svc *activation.Service) *GraphGenerator {
	return &GraphGenerator{svc: svc}
}

// Generate returns the DOT source for graphType.
func (g *GraphGenerator) Generate(ctx context.Context, graphType string, activationID uuid.UUID) (string, error) {
	var buf bytes.Buffer
	if err := g.Render(ctx, graphType, activationID, graphviz.XDOT, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes the graph in format (XDOT, SVG, PNG) to w.
func (g *GraphGenerator) Render(ctx context.Context, graphType string, activationID uuid.UUID, format graphviz.Format, w io.Writer) error {
	var build func(context.Context, *cgraph.Graph, uuid.UUID) error
	switch graphType {
	case GraphPipeline, "":
		build = g.buildPipeline
	case GraphStakeholders:
		build = g.buildStakeholders
	default:
		return fmt.Errorf("unknown graph type %q: must be %s or %s", graphType, GraphPipeline, GraphStakeholders)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	if err := build(ctx, graph, activationID); err != nil {
		return err
	}

	if err := gv.Render(ctx, graph, format, w); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}
	return nil
}

func (g *GraphGenerator) activationNode(ctx context.Context, graph *cgraph.Graph, activationID uuid.UUID) (*cgraph.Node, *models.Activation, error) {
	a, err := g.svc.GetActivation(ctx, activationID)
	if err != nil {
		return nil, nil, err
	}

	graph.SetLabel(fmt.Sprintf("%s (%s)", a.Name, a.Phase))
	graph.SetRankDir(cgraph.LRRank)

	node, err := graph.CreateNodeByName("activation")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create activation node: %w", err)
	}
	node.SetLabel(fmt.Sprintf("%s\n%s\n%s", a.Name, a.Brand, a.Phase))
	node.SetShape("doubleoctagon")
	node.SetStyle("filled")
	node.SetFillColor("lightblue")
	return node, a, nil
}

func (g *GraphGenerator) buildPipeline(ctx context.Context, graph *cgraph.Graph, activationID uuid.UUID) error {
	root, _, err := g.activationNode(ctx, graph, activationID)
	if err != nil {
		return err
	}

	venues, err := g.svc.ListVenues(ctx, activationID)
	if err != nil {
		return err
	}
	for _, v := range venues {
		node, err := graph.CreateNodeByName("venue_" + short(v.ID))
		if err != nil {
			return fmt.Errorf("failed to create venue node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n(%s)", v.Name, v.Status))
		node.SetShape("house")
		node.SetStyle("filled")
		node.SetFillColor(venueColor(v.Status))
		if _, err := graph.CreateEdgeByName("venue", root, node); err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
	}

	items, err := g.svc.ListBudgetItems(ctx, activationID)
	if err != nil {
		return err
	}
	for _, item := range items {
		node, err := graph.CreateNodeByName("budget_" + short(item.ID))
		if err != nil {
			return fmt.Errorf("failed to create budget node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s\n(%s)", item.Description, FormatCents(item.Spend()), item.Status))
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(budgetColor(item.Status))
		edge, err := graph.CreateEdgeByName("budget", root, node)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel(string(item.Category))
	}

	products, err := g.svc.ListProducts(ctx, activationID)
	if err != nil {
		return err
	}
	for _, p := range products {
		node, err := graph.CreateNodeByName("product_" + short(p.ID))
		if err != nil {
			return fmt.Errorf("failed to create product node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%d requested\n(%s)", p.Name, p.QuantityRequested, p.Status))
		node.SetShape("component")
		node.SetStyle("filled")
		node.SetFillColor(productColor(p.Status))
		edge, err := graph.CreateEdgeByName("product", root, node)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetStyle("dashed")
	}
	return nil
}

func (g *GraphGenerator) buildStakeholders(ctx context.Context, graph *cgraph.Graph, activationID uuid.UUID) error {
	root, _, err := g.activationNode(ctx, graph, activationID)
	if err != nil {
		return err
	}

	stakeholders, err := g.svc.ListStakeholders(ctx, activationID)
	if err != nil {
		return err
	}
	nodes := make(map[uuid.UUID]*cgraph.Node, len(stakeholders))
	for _, sh := range stakeholders {
		node, err := graph.CreateNodeByName("stakeholder_" + short(sh.ID))
		if err != nil {
			return fmt.Errorf("failed to create stakeholder node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s\nNDA: %s", sh.Name, sh.Type, sh.NDAStatus))
		node.SetShape("ellipse")
		node.SetStyle("filled")
		node.SetFillColor("lightgreen")
		nodes[sh.ID] = node
		edge, err := graph.CreateEdgeByName("stakeholder", root, node)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetDir("none")
	}

	docs, err := g.svc.DocumentsFor(ctx, activationID, models.AdminViewer)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		node, err := graph.CreateNodeByName("document_" + short(doc.ID))
		if err != nil {
			return fmt.Errorf("failed to create document node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n(%s, %s)", doc.Title, doc.Type, doc.SignStatus))
		node.SetShape("note")
		node.SetStyle("filled")
		node.SetFillColor(signColor(doc.SignStatus))

		owner := root
		if doc.ScopedToStakeholderID != nil {
			if n, ok := nodes[*doc.ScopedToStakeholderID]; ok {
				owner = n
			}
		}
		edge, err := graph.CreateEdgeByName("document", owner, node)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetStyle("dotted")
	}
	return nil
}

func short(id uuid.UUID) string {
	return id.String()[:8]
}

func venueColor(s models.VenueStatus) string {
	switch s {
	case models.VenueBooked:
		return "palegreen"
	case models.VenueWalkthroughScheduled, models.VenueWalkthroughDone:
		return "khaki"
	}
	return "lightgrey"
}

func budgetColor(s models.BudgetStatus) string {
	switch s {
	case models.BudgetPaid:
		return "palegreen"
	case models.BudgetApproved:
		return "lightblue"
	case models.BudgetPendingApproval:
		return "khaki"
	case models.BudgetRejected:
		return "lightpink"
	}
	return "lightgrey"
}

func productColor(s models.ProductStatus) string {
	switch s {
	case models.ProductReconciled:
		return "palegreen"
	case models.ProductDelivered, models.ProductInUse:
		return "lightblue"
	case models.ProductShipped:
		return "khaki"
	}
	return "lightgrey"
}

func signColor(s models.SignStatus) string {
	switch s {
	case models.SignSigned:
		return "palegreen"
	case models.SignPendingSignature:
		return "khaki"
	}
	return "white"
}

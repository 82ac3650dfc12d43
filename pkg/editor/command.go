package editor

import (
	"context"
	"fmt"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/tree"
	"github.com/mitchellh/mapstructure"
)

// Operation names accepted by Execute.
const (
	OpAddNode           = "add_node"
	OpUpdateStyle       = "update_style"
	OpUpdateContent     = "update_content"
	OpUpdateAttribute   = "update_attribute"
	OpReplaceImage      = "replace_image"
	OpRemoveNode        = "remove_node"
	OpMoveNode          = "move_node"
	OpCopyNode          = "copy_node"
	OpAddPage           = "add_page"
	OpSelectPage        = "select_page"
	OpRenameSite        = "rename_site"
	OpUpdatePage        = "update_page"
	OpUpdateCanvasStyle = "update_canvas_style"
	OpUpdateGrid        = "update_grid"
	OpUndo              = "undo"
	OpRedo              = "redo"
)

// Operations lists every operation name in a stable order.
var Operations = []string{
	OpAddNode, OpUpdateStyle, OpUpdateContent, OpUpdateAttribute, OpReplaceImage,
	OpRemoveNode, OpMoveNode, OpCopyNode,
	OpAddPage, OpSelectPage, OpRenameSite, OpUpdatePage, OpUpdateCanvasStyle, OpUpdateGrid,
	OpUndo, OpRedo,
}

// Command is a serializable mutation request, as received by the HTTP, MCP and REPL
// front ends. Only the fields relevant to Op are read.
type Command struct {
	Op string `json:"op" mapstructure:"op"`

	NodeID   string `json:"nodeId,omitempty" mapstructure:"nodeId"`
	ParentID string `json:"parentId,omitempty" mapstructure:"parentId"`
	PageID   string `json:"pageId,omitempty" mapstructure:"pageId"`

	Kind       domain.Kind       `json:"kind,omitempty" mapstructure:"kind"`
	Attributes map[string]any    `json:"attributes,omitempty" mapstructure:"attributes"`
	Style      map[string]string `json:"style,omitempty" mapstructure:"style"`
	Content    *string           `json:"content,omitempty" mapstructure:"content"`

	Key   string `json:"key,omitempty" mapstructure:"key"`
	Value any    `json:"value,omitempty" mapstructure:"value"`

	Src  string `json:"src,omitempty" mapstructure:"src"`
	Alt  string `json:"alt,omitempty" mapstructure:"alt"`
	Hint string `json:"hint,omitempty" mapstructure:"hint"`

	Direction string `json:"direction,omitempty" mapstructure:"direction"`

	Name string `json:"name,omitempty" mapstructure:"name"`
	Path string `json:"path,omitempty" mapstructure:"path"`

	Visible  bool   `json:"visible,omitempty" mapstructure:"visible"`
	GridSize string `json:"gridSize,omitempty" mapstructure:"gridSize"`
}

// DecodeCommand converts a loosely typed payload into a Command.
func DecodeCommand(raw map[string]any) (Command, error) {
	var cmd Command
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cmd,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return cmd, err
	}
	if err := dec.Decode(raw); err != nil {
		return cmd, fmt.Errorf("invalid command: %w", err)
	}
	return cmd, nil
}

// Execute dispatches cmd to the matching Session method.
func (s *Session) Execute(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Op {
	case OpAddNode:
		attrs, err := domain.DecodeAttributes(cmd.Attributes)
		if err != nil {
			return s.reject(ctx, edit{op: cmd.Op, nodeID: cmd.ParentID}, err)
		}
		return s.AddNode(ctx, AddNodeRequest{
			Kind:       cmd.Kind,
			ParentID:   cmd.ParentID,
			Attributes: attrs,
			Style:      cmd.Style,
			Content:    cmd.Content,
			ImageSrc:   cmd.Src,
			ImageAlt:   cmd.Alt,
		})
	case OpUpdateStyle:
		return s.UpdateStyle(ctx, cmd.NodeID, cmd.Style), nil
	case OpUpdateContent:
		if cmd.Content == nil {
			return s.noop(edit{op: cmd.Op, nodeID: cmd.NodeID}), nil
		}
		return s.UpdateContent(ctx, cmd.NodeID, *cmd.Content), nil
	case OpUpdateAttribute:
		return s.UpdateAttribute(ctx, cmd.NodeID, cmd.Key, cmd.Value)
	case OpReplaceImage:
		return s.ReplaceImage(ctx, cmd.NodeID, cmd.Src, cmd.Alt, cmd.Hint), nil
	case OpRemoveNode:
		return s.RemoveNode(ctx, cmd.NodeID), nil
	case OpMoveNode:
		dir, ok := tree.ParseDirection(cmd.Direction)
		if !ok {
			return s.reject(ctx, edit{op: cmd.Op, nodeID: cmd.NodeID},
				fmt.Errorf("%w: direction %q", domain.ErrInvalidAttribute, cmd.Direction))
		}
		return s.MoveNode(ctx, cmd.NodeID, dir), nil
	case OpCopyNode:
		return s.CopyNode(ctx, cmd.NodeID)
	case OpAddPage:
		return s.AddPage(ctx, AddPageRequest{Name: cmd.Name, Path: cmd.Path})
	case OpSelectPage:
		return s.SelectPage(ctx, cmd.PageID), nil
	case OpRenameSite:
		return s.RenameSite(ctx, cmd.Name), nil
	case OpUpdatePage:
		return s.UpdatePage(ctx, cmd.PageID, UpdatePageRequest{Name: cmd.Name, Path: cmd.Path})
	case OpUpdateCanvasStyle:
		return s.UpdateCanvasStyle(ctx, cmd.Style), nil
	case OpUpdateGrid:
		return s.UpdateGrid(ctx, cmd.Visible, cmd.GridSize), nil
	case OpUndo:
		return Result{Changed: s.Undo(ctx)}, nil
	case OpRedo:
		return Result{Changed: s.Redo(ctx)}, nil
	}
	return s.reject(ctx, edit{op: cmd.Op}, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, cmd.Op))
}

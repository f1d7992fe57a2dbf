package cart

import (
	"strings"

	"agrimarket-cart/internal/domain"
)

// Action is a state transition understood by Reduce.
type Action interface {
	Name() string
}

type AddItem struct {
	Item domain.LineItem
}

type RemoveItem struct {
	Key domain.LineKey
}

type UpdateQuantity struct {
	Key      domain.LineKey
	Quantity int
}

type ClearCart struct{}

type ToggleDrawer struct{}

type OpenDrawer struct{}

type CloseDrawer struct{}

func (AddItem) Name() string        { return "addItem" }
func (RemoveItem) Name() string     { return "removeItem" }
func (UpdateQuantity) Name() string { return "updateQuantity" }
func (ClearCart) Name() string      { return "clearCart" }
func (ToggleDrawer) Name() string   { return "toggleDrawer" }
func (OpenDrawer) Name() string     { return "openDrawer" }
func (CloseDrawer) Name() string    { return "closeDrawer" }

// Reduce returns the state that results from applying action to state. It never
// modifies state and unknown actions leave it unchanged.
func Reduce(state domain.CartState, action Action) domain.CartState {
	switch a := action.(type) {
	case AddItem:
		next := state.Clone()
		qty := a.Item.Quantity
		if qty <= 0 {
			qty = 1
		}
		if idx := next.Find(a.Item.Key()); idx >= 0 {
			next.Items[idx].Quantity = domain.AddQuantities(next.Items[idx].Quantity, qty)
			return next
		}
		item := a.Item
		item.Quantity = domain.AddQuantities(0, qty)
		if item.Seller != nil {
			seller := *item.Seller
			item.Seller = &seller
		}
		next.Items = append(next.Items, item)
		return next
	case RemoveItem:
		idx := state.Find(a.Key)
		if idx < 0 {
			return state
		}
		return removeAt(state, idx)
	case UpdateQuantity:
		idx := state.Find(a.Key)
		if idx < 0 {
			return state
		}
		// quantity never drops below one; asking for less removes the line.
		if a.Quantity <= 0 {
			return removeAt(state, idx)
		}
		next := state.Clone()
		next.Items[idx].Quantity = domain.AddQuantities(0, a.Quantity)
		return next
	case ClearCart:
		return domain.CartState{Items: []domain.LineItem{}, IsOpen: state.IsOpen}
	case ToggleDrawer:
		next := state.Clone()
		next.IsOpen = !state.IsOpen
		return next
	case OpenDrawer:
		next := state.Clone()
		next.IsOpen = true
		return next
	case CloseDrawer:
		next := state.Clone()
		next.IsOpen = false
		return next
	default:
		return state
	}
}

func actionName(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.Name()
}

func actionNames(actions []Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = actionName(a)
	}
	return strings.Join(names, "+")
}

func removeAt(state domain.CartState, idx int) domain.CartState {
	next := state.Clone()
	next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
	return next
}

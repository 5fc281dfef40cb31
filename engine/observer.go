package engine

import "github.com/lixenwraith/danmaku/components"

// Observer receives item lifecycle notifications from the scheduler
// Callbacks run synchronously inside Push or Frame and must not call back into the Scheduler
type Observer interface {
	ItemPlaced(item *components.Item)
	ItemRetired(item *components.Item)
	ItemDropped(item *components.Item)
}

// NopObserver ignores every notification
type NopObserver struct{}

func (NopObserver) ItemPlaced(*components.Item)  {}
func (NopObserver) ItemRetired(*components.Item) {}
func (NopObserver) ItemDropped(*components.Item) {}

// Observers fans notifications out in order
type Observers []Observer

func (o Observers) ItemPlaced(item *components.Item) {
	for _, ob := range o {
		ob.ItemPlaced(item)
	}
}

func (o Observers) ItemRetired(item *components.Item) {
	for _, ob := range o {
		ob.ItemRetired(item)
	}
}

func (o Observers) ItemDropped(item *components.Item) {
	for _, ob := range o {
		ob.ItemDropped(item)
	}
}

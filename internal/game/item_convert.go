package game

import "fmt"

// ConvertTo turns the item into the item kind id, keeping its instance,
// position, owner, count and unknown state. The target is built completely
// before any field changes; an unknown id is logged and leaves the item as it
// was.
func (i *Item) ConvertTo(id string) error {
	if i.env == nil || i.env.Templates == nil {
		return fmt.Errorf("converting %s: no templates", i.id)
	}

	tmpl, err := i.env.Templates.Template(id)
	if err != nil {
		i.env.logger().Error("converting item", "from", i.id, "to", id, "error", err)
		return fmt.Errorf("converting %s to %q: %w", i.id, id, err)
	}

	from := i.id
	hadBody := i.body != 0

	i.graphic = nil

	i.id = tmpl.id
	i.name = tmpl.name
	i.description = tmpl.description
	i.promptText = tmpl.promptText
	i.itemType = tmpl.itemType
	i.uses = tmpl.uses
	i.useCheck = tmpl.useCheck
	i.useTime = tmpl.useTime
	i.renderer = tmpl.renderer
	i.animation = tmpl.animation
	i.sprite = tmpl.sprite
	i.autoPickup = tmpl.autoPickup
	i.automatic = tmpl.automatic
	i.used = false

	i.attachGraphic()

	if hadBody {
		i.RemoveDroppedComponents()
		i.AddDroppedComponents()
	}

	i.CheckMasked()

	if from != "" {
		i.env.emit(ItemConvertedEvent{From: from, To: id, InstanceId: i.instanceId})
	}
	return nil
}

// attachGraphic gives the item an animated graphic when it names an
// animation and a static sprite otherwise.
func (i *Item) attachGraphic() {
	if i.animation != "" {
		i.graphic = &Graphic{Kind: GraphicAnimated, Name: i.animation, Size: i.sprite}
		return
	}
	i.graphic = &Graphic{Kind: GraphicStatic, Name: i.id, Size: i.sprite}
}

// CheckMasked recomputes whether the item is shown as "???". Unknown items are
// always masked; at depth zero so are items the player never unlocked.
func (i *Item) CheckMasked() {
	i.masked = i.unknown || (i.env.depth() == 0 && !i.Unlocked())
}

// Unlocked reports whether the item's id has been unlocked for good.
func (i *Item) Unlocked() bool {
	return Unlocked(i.env.progression(), i.id)
}

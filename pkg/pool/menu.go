package pool

// Menu is a Pool using menu vocabulary, e.g. `sub menu "x"` in String.
type Menu struct {
	*Pool
}

// NewMenu returns an empty menu.
func NewMenu(opts ...Option) (*Menu, error) {
	pool, err := New(opts...)
	if err != nil {
		return nil, err
	}

	pool.SetNoun("menu")

	return &Menu{Pool: pool}, nil
}

// Submenu enters the group at path, creating missing groups.
func (menu *Menu) Submenu(path string) error {
	return menu.Subpool(path)
}

// ChangeSubmenu enters the existing group at path.
func (menu *Menu) ChangeSubmenu(path string) error {
	return menu.ChangeSubpool(path)
}

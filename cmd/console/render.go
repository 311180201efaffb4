package main

import (
	"strconv"

	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/olekukonko/tablewriter"
)

func (a *app) table(header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(a.out)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	return t
}

func (a *app) renderProducts(products []model.Product) {
	t := a.table("ID", "Name", "Price", "Stock", "Category", "Image")
	for _, p := range products {
		t.Append([]string{
			id(p.ID),
			p.DisplayName(),
			p.Price.StringFixed(2),
			string(p.StockStatus),
			id(p.CategoryID),
			p.ImageURL,
		})
	}
	t.Render()
}

func (a *app) renderCategories(categories []model.Category) {
	t := a.table("ID", "Name", "Description")
	for _, c := range categories {
		t.Append([]string{id(c.ID), c.CategoryName, c.Description})
	}
	t.Render()
}

func (a *app) renderAdmins(users []model.AdminUser) {
	t := a.table("ID", "Name", "Email", "Status", "Role")
	for _, u := range users {
		t.Append([]string{id(u.ID), u.UserName, u.Email, u.Status.String(), id(u.RoleID)})
	}
	t.Render()
}

func (a *app) renderConsumers(users []model.ConsumerUser) {
	t := a.table("ID", "Name", "Email", "Status")
	for _, u := range users {
		t.Append([]string{id(u.ID), u.UserName, u.Email, u.Status.String()})
	}
	t.Render()
}

func id(v int64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatInt(v, 10)
}

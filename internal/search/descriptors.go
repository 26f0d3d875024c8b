package search

import "github.com/yukikurage/team-management-api/internal/models"

// The descriptors below expect relations used by their fields to be preloaded.

var Employees = Descriptor[models.Employee]{
	Entity: "employee",
	Fields: []Field[models.Employee]{
		Text("last_name", func(e models.Employee) string { return e.LastName }),
		Text("first_name", func(e models.Employee) string { return e.FirstName }),
		Text("email", func(e models.Employee) string { return e.Email }),
		Text("position", func(e models.Employee) string { return e.Position.Name }),
	},
	Key: func(e models.Employee) uint64 { return e.ID },
}

var Invitations = Descriptor[models.Invitation]{
	Entity: "invitation",
	Fields: []Field[models.Invitation]{
		Text("email", func(i models.Invitation) string { return i.Email }),
		Text("position", func(i models.Invitation) string { return i.Position.Name }),
	},
	Key: func(i models.Invitation) uint64 { return i.ID },
}

var Teams = Descriptor[models.Team]{
	Entity: "team",
	Fields: []Field[models.Team]{
		Text("name", func(t models.Team) string { return t.Name }),
		Many("members", func(t models.Team) []string {
			values := make([]string, 0, len(t.Members)*3)
			for _, m := range t.Members {
				values = append(values, m.FirstName, m.LastName, m.Email)
			}
			return values
		}),
	},
	Key: func(t models.Team) uint64 { return t.ID },
}

var Projects = Descriptor[models.Project]{
	Entity: "project",
	Fields: []Field[models.Project]{
		Text("name", func(p models.Project) string { return p.Name }),
		Many("tasks", func(p models.Project) []string {
			values := make([]string, len(p.Tasks))
			for i, t := range p.Tasks {
				values[i] = t.Name
			}
			return values
		}),
	},
	Key: func(p models.Project) uint64 { return p.ID },
}

// ProjectTasks is the stricter task search on the project detail view.
var ProjectTasks = Descriptor[models.Task]{
	Entity: "task",
	Fields: []Field[models.Task]{
		Text("name", func(t models.Task) string { return t.Name }),
		Text("description", func(t models.Task) string { return t.Description }),
	},
	Key:      func(t models.Task) uint64 { return t.ID },
	Strategy: RankByFirstMatch,
}

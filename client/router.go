package client

// Vistas de la aplicación.
const (
	ViewHome             = "home"
	ViewCourses          = "courses"
	ViewLogin            = "login"
	ViewRegister         = "register"
	ViewStudentDashboard = "student-dashboard"
	ViewTeacherDashboard = "teacher-dashboard"
	ViewAdminDashboard   = "admin-dashboard"
)

type route struct {
	requiresAuth bool
	allowedRoles []string
}

var routeTable = map[string]route{
	ViewHome:             {},
	ViewCourses:          {},
	ViewLogin:            {},
	ViewRegister:         {},
	ViewStudentDashboard: {requiresAuth: true, allowedRoles: []string{"student"}},
	ViewTeacherDashboard: {requiresAuth: true, allowedRoles: []string{"teacher"}},
	ViewAdminDashboard:   {requiresAuth: true, allowedRoles: []string{"admin"}},
}

// Router decide la vista activa usando el estado compartido.
type Router struct {
	Store *Store
}

// Navigate cambia de vista. Las vistas protegidas exigen sesión y rol;
// si no se cumplen, vuelve a home.
func (r *Router) Navigate(view string) {
	target, ok := routeTable[view]
	if !ok {
		view = ViewHome
		target = routeTable[ViewHome]
	}

	state := r.Store.Get()
	if target.requiresAuth {
		if !state.IsAuthenticated || state.User == nil {
			view = ViewHome
		} else if !roleAllowed(state.User.Role.Name, target.allowedRoles) {
			view = ViewHome
		}
	}

	r.Store.Set(Patch{CurrentView: &view})
}

// DashboardFor devuelve la vista de panel según el rol del usuario.
func DashboardFor(role string) string {
	switch role {
	case "admin":
		return ViewAdminDashboard
	case "teacher":
		return ViewTeacherDashboard
	case "student":
		return ViewStudentDashboard
	default:
		return ViewHome
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
